package model

import "testing"

func TestBuiltInPresets(t *testing.T) {
	presets := BuiltInPresets()
	if len(presets) == 0 {
		t.Fatal("expected built-in presets")
	}
	seen := map[string]bool{}
	for _, p := range presets {
		if !p.IsBuiltIn {
			t.Errorf("preset %s should be built-in", p.Name)
		}
		if seen[p.Name] {
			t.Errorf("duplicate preset %s", p.Name)
		}
		seen[p.Name] = true
		if p.Settings.Padding < 0 || p.Settings.MaxSize <= 0 {
			t.Errorf("preset %s has invalid settings %+v", p.Name, p.Settings)
		}
	}
	if presets[0].Settings != DefaultSettings() {
		t.Error("first preset should mirror DefaultSettings")
	}
}

func TestFindPreset(t *testing.T) {
	p, ok := FindPreset("font", nil)
	if !ok {
		t.Fatal("expected to find Font preset case-insensitively")
	}
	if p.Settings.AllowRotation {
		t.Error("Font preset should disable rotation")
	}

	custom := []SettingsPreset{{Name: "Font", Settings: AtlasSettings{Width: 128, Height: 128}}}
	p, ok = FindPreset("Font", custom)
	if !ok || p.Settings.Width != 128 {
		t.Errorf("custom preset should override built-in, got %+v", p)
	}

	if _, ok := FindPreset("nope", custom); ok {
		t.Error("unexpected preset found")
	}
}
