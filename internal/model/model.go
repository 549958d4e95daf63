package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Sprite is a rectangle requested for the atlas: an image, a glyph bitmap or
// any other payload the caller will later blit at the packed position.
type Sprite struct {
	ID        string `json:"id" toml:"id"`
	Label     string `json:"label" toml:"label"`
	Width     int    `json:"width" toml:"width"`   // px
	Height    int    `json:"height" toml:"height"` // px
	Quantity  int    `json:"quantity" toml:"quantity"`
	CanRotate bool   `json:"can_rotate" toml:"can_rotate"` // May be stored rotated 90°
}

func NewSprite(label string, w, h, qty int) Sprite {
	return Sprite{
		ID:        uuid.New().String()[:8],
		Label:     label,
		Width:     w,
		Height:    h,
		Quantity:  qty,
		CanRotate: true,
	}
}

// UnmarshalJSON decodes a sprite, treating a missing can_rotate as true so
// hand-written project files behave like TOML jobs and NewSprite.
func (s *Sprite) UnmarshalJSON(data []byte) error {
	type plain Sprite
	v := plain{CanRotate: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Sprite(v)
	return nil
}

// Area returns the unrotated area of a single copy.
func (s Sprite) Area() int {
	return s.Width * s.Height
}

// AtlasSettings holds the container and packing configuration.
type AtlasSettings struct {
	Width         int  `json:"width" toml:"width"`                   // Container width px, 0 = estimate
	Height        int  `json:"height" toml:"height"`                 // Container height px, 0 = estimate
	Padding       int  `json:"padding" toml:"padding"`               // Extra px added right and below each sprite
	AllowRotation bool `json:"allow_rotation" toml:"allow_rotation"` // Master switch for per-sprite CanRotate
	PowerOfTwo    bool `json:"power_of_two" toml:"power_of_two"`     // Round the used atlas size up to powers of two
	AutoGrow      bool `json:"auto_grow" toml:"auto_grow"`           // Enlarge the container and retry when sprites do not fit
	MaxSize       int  `json:"max_size" toml:"max_size"`             // Upper bound for either side when growing
}

func DefaultSettings() AtlasSettings {
	return AtlasSettings{
		Width:         1024,
		Height:        1024,
		Padding:       1,
		AllowRotation: true,
		PowerOfTwo:    true,
		AutoGrow:      false,
		MaxSize:       4096,
	}
}

// Placement is a sprite placed in the atlas.
type Placement struct {
	Sprite  Sprite `json:"sprite"`
	X       int    `json:"x"`       // px from left edge
	Y       int    `json:"y"`       // px from top edge
	Rotated bool   `json:"rotated"` // Stored rotated 90°
}

// PlacedWidth returns the effective width considering rotation.
func (p Placement) PlacedWidth() int {
	return p.Rect().W
}

// PlacedHeight returns the effective height considering rotation.
func (p Placement) PlacedHeight() int {
	return p.Rect().H
}

// Rect returns the occupied rectangle in atlas coordinates.
func (p Placement) Rect() Rect {
	r := Rect{X: p.X, Y: p.Y, W: p.Sprite.Width, H: p.Sprite.Height}
	if p.Rotated {
		return r.Rotated()
	}
	return r
}

// PackResult is a finished atlas layout. Placements are in the order the
// sprites were supplied, with quantities expanded.
type PackResult struct {
	Width       int         `json:"width"`        // Container width used for the final pack
	Height      int         `json:"height"`       // Container height used for the final pack
	AtlasWidth  int         `json:"atlas_width"`  // Used extent, possibly rounded to a power of two
	AtlasHeight int         `json:"atlas_height"` // Used extent, possibly rounded to a power of two
	Placements  []Placement `json:"placements"`
}

// UsedArea returns the total area covered by placed sprites.
func (r PackResult) UsedArea() int {
	var total int
	for _, p := range r.Placements {
		total += p.PlacedWidth() * p.PlacedHeight()
	}
	return total
}

// TotalArea returns the atlas area.
func (r PackResult) TotalArea() int {
	return r.AtlasWidth * r.AtlasHeight
}

// Efficiency returns the usage percentage of the atlas.
func (r PackResult) Efficiency() float64 {
	ta := r.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(r.UsedArea()) / float64(ta) * 100.0
}

// Validate checks that every placement lies inside the container and that
// no two placements overlap.
func (r PackResult) Validate() error {
	container := NewRect(r.Width, r.Height)
	for i, a := range r.Placements {
		ra := a.Rect()
		if !container.Contains(ra) {
			return fmt.Errorf("sprite %q at %d,%d (%dx%d) is outside the %dx%d container",
				a.Sprite.Label, ra.X, ra.Y, ra.W, ra.H, r.Width, r.Height)
		}
		for _, b := range r.Placements[i+1:] {
			if ra.Overlaps(b.Rect()) {
				return fmt.Errorf("sprites %q and %q overlap", a.Sprite.Label, b.Sprite.Label)
			}
		}
	}
	return nil
}

// Project ties everything together for save/load.
type Project struct {
	Name     string        `json:"name" toml:"name"`
	Sprites  []Sprite      `json:"sprites" toml:"sprites"`
	Settings AtlasSettings `json:"settings" toml:"settings"`
	Result   *PackResult   `json:"result,omitempty" toml:"-"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Sprites:  []Sprite{},
		Settings: DefaultSettings(),
	}
}
