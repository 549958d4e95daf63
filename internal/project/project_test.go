package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/atlaspack/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui"+ProjectExt)

	p := model.NewProject()
	p.Name = "ui"
	p.Sprites = append(p.Sprites, model.NewSprite("button", 64, 24, 3))
	p.Settings.Padding = 2
	p.Result = &model.PackResult{Width: 128, Height: 128, AtlasWidth: 64, AtlasHeight: 72}

	if err := SaveProject(path, p); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}

	if loaded.Name != "ui" {
		t.Errorf("expected name ui, got %s", loaded.Name)
	}
	if len(loaded.Sprites) != 1 || loaded.Sprites[0] != p.Sprites[0] {
		t.Errorf("sprites changed in round trip: %+v", loaded.Sprites)
	}
	if loaded.Settings.Padding != 2 {
		t.Errorf("expected padding 2, got %d", loaded.Settings.Padding)
	}
	if loaded.Result == nil || loaded.Result.AtlasHeight != 72 {
		t.Errorf("expected stored result, got %+v", loaded.Result)
	}
}

func TestLoadProjectErrors(t *testing.T) {
	if _, err := LoadProject(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing project")
	}
	if _, err := LoadProject(writeFile(t, "bad.json", "{")); err == nil {
		t.Error("expected error for invalid project JSON")
	}
}

func TestLoadJobTOML(t *testing.T) {
	path := writeFile(t, "icons.toml", `
[settings]
width = 256
height = 128
padding = 0

[[sprites]]
label = "gear"
width = 32
height = 32
quantity = 2

[[sprites]]
label = "banner"
width = 100
height = 20
can_rotate = false
`)

	p, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob: %v", err)
	}
	if p.Name != "icons" {
		t.Errorf("expected name from file name, got %q", p.Name)
	}
	if p.Settings.Width != 256 || p.Settings.Height != 128 || p.Settings.Padding != 0 {
		t.Errorf("unexpected settings %+v", p.Settings)
	}
	if !p.Settings.AllowRotation || p.Settings.MaxSize != model.DefaultSettings().MaxSize {
		t.Errorf("settings missing from the job should keep defaults: %+v", p.Settings)
	}
	if len(p.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(p.Sprites))
	}
	if !p.Sprites[0].CanRotate {
		t.Error("sprites are rotatable unless the job says otherwise")
	}
	if p.Sprites[1].CanRotate {
		t.Error("expected banner to be fixed")
	}
	if p.Sprites[1].Quantity != 1 {
		t.Errorf("missing quantity should be 1, got %d", p.Sprites[1].Quantity)
	}
	for _, s := range p.Sprites {
		if len(s.ID) != 8 {
			t.Errorf("expected generated 8 char id, got %q", s.ID)
		}
	}
}

func TestLoadJobTOMLUnknownKey(t *testing.T) {
	path := writeFile(t, "typo.toml", "[settings]\nwidht = 64\n")
	if _, err := LoadJob(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadJobJSON(t *testing.T) {
	path := writeFile(t, "job.json", `{"name":"json job","sprites":[`+
		`{"id":"abc","label":"a","width":4,"height":4,"quantity":1},`+
		`{"label":"b","width":8,"height":2,"quantity":1,"can_rotate":false}]}`)
	p, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob: %v", err)
	}
	if p.Name != "json job" || len(p.Sprites) != 2 || p.Sprites[0].ID != "abc" {
		t.Errorf("unexpected project %+v", p)
	}
	if !p.Sprites[0].CanRotate {
		t.Error("JSON sprites without can_rotate should be rotatable, as in TOML jobs")
	}
	if p.Sprites[1].CanRotate {
		t.Error("expected b to be fixed")
	}
	if p.Settings != model.DefaultSettings() {
		t.Errorf("settings missing from the job should keep defaults: %+v", p.Settings)
	}
}

func TestLoadJobUnsupported(t *testing.T) {
	_, err := LoadJob(writeFile(t, "job.yaml", "name: x"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
