package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSpriteAssignsShortID(t *testing.T) {
	a := NewSprite("hero", 32, 48, 1)
	b := NewSprite("hero", 32, 48, 1)
	if len(a.ID) != 8 {
		t.Errorf("expected 8 char id, got %q", a.ID)
	}
	if a.ID == b.ID {
		t.Error("expected distinct ids")
	}
	if !a.CanRotate {
		t.Error("new sprites may rotate by default")
	}
	if a.Area() != 32*48 {
		t.Errorf("expected area %d, got %d", 32*48, a.Area())
	}
}

func TestPlacementRotation(t *testing.T) {
	p := Placement{Sprite: Sprite{Width: 10, Height: 20}, X: 5, Y: 6}
	if p.PlacedWidth() != 10 || p.PlacedHeight() != 20 {
		t.Errorf("unrotated size wrong: %dx%d", p.PlacedWidth(), p.PlacedHeight())
	}
	p.Rotated = true
	if got := p.Rect(); got != (Rect{X: 5, Y: 6, W: 20, H: 10}) {
		t.Errorf("unexpected rotated rect %+v", got)
	}
}

func TestRectRotated(t *testing.T) {
	r := Rect{X: 3, Y: 4, W: 10, H: 20}
	if got := r.Rotated(); got != (Rect{X: 3, Y: 4, W: 20, H: 10}) {
		t.Errorf("unexpected rotated rect %+v", got)
	}
	if got := r.Rotated().Rotated(); got != r {
		t.Errorf("rotating twice should restore %+v, got %+v", r, got)
	}
}

func TestSpriteJSONCanRotateDefault(t *testing.T) {
	var s Sprite
	if err := json.Unmarshal([]byte(`{"id":"a","label":"hero","width":8,"height":4,"quantity":1}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !s.CanRotate {
		t.Error("sprites without can_rotate should be rotatable")
	}
	if s.Label != "hero" || s.Width != 8 || s.Height != 4 {
		t.Errorf("unexpected sprite %+v", s)
	}

	if err := json.Unmarshal([]byte(`{"label":"fixed","width":8,"height":4,"can_rotate":false}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.CanRotate {
		t.Error("explicit can_rotate false must be kept")
	}
}

func TestPackResultEfficiency(t *testing.T) {
	r := PackResult{
		Width: 64, Height: 64, AtlasWidth: 64, AtlasHeight: 32,
		Placements: []Placement{
			{Sprite: Sprite{Width: 32, Height: 32}},
			{Sprite: Sprite{Width: 32, Height: 16}, X: 32},
		},
	}
	if r.UsedArea() != 32*32+32*16 {
		t.Errorf("unexpected used area %d", r.UsedArea())
	}
	if r.TotalArea() != 64*32 {
		t.Errorf("unexpected total area %d", r.TotalArea())
	}
	if r.Efficiency() != 75.0 {
		t.Errorf("expected 75%% efficiency, got %f", r.Efficiency())
	}
	if (PackResult{}).Efficiency() != 0 {
		t.Error("empty result should have zero efficiency")
	}
}

func TestPackResultValidate(t *testing.T) {
	ok := PackResult{
		Width: 20, Height: 10,
		Placements: []Placement{
			{Sprite: Sprite{Label: "a", Width: 10, Height: 10}},
			{Sprite: Sprite{Label: "b", Width: 10, Height: 10}, X: 10},
		},
	}
	if err := ok.Validate(); err != nil {
		t.Errorf("expected valid layout, got %v", err)
	}

	overlap := ok
	overlap.Placements = []Placement{ok.Placements[0], {Sprite: Sprite{Label: "b", Width: 10, Height: 10}, X: 5}}
	if err := overlap.Validate(); err == nil || !strings.Contains(err.Error(), "overlap") {
		t.Errorf("expected overlap error, got %v", err)
	}

	outside := ok
	outside.Placements = []Placement{{Sprite: Sprite{Label: "c", Width: 10, Height: 10}, X: 15}}
	if err := outside.Validate(); err == nil || !strings.Contains(err.Error(), "outside") {
		t.Errorf("expected outside error, got %v", err)
	}
}

func TestNewProjectDefaults(t *testing.T) {
	p := NewProject()
	if p.Name != "Untitled" {
		t.Errorf("expected Untitled, got %s", p.Name)
	}
	if p.Sprites == nil {
		t.Error("Sprites should not be nil")
	}
	if p.Settings != DefaultSettings() {
		t.Error("expected default settings")
	}
}
