package model

import "strings"

// SettingsPreset is a named AtlasSettings bundle for a common target.
type SettingsPreset struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	IsBuiltIn   bool          `json:"is_built_in"`
	Settings    AtlasSettings `json:"settings"`
}

// BuiltInPresets returns the presets shipped with the application.
func BuiltInPresets() []SettingsPreset {
	base := DefaultSettings()

	font := base
	font.Width, font.Height = 512, 512
	font.AllowRotation = false

	mobile := base
	mobile.Width, mobile.Height = 2048, 2048
	mobile.Padding = 2
	mobile.MaxSize = 2048

	desktop := base
	desktop.Width, desktop.Height = 1024, 1024
	desktop.Padding = 2
	desktop.AutoGrow = true
	desktop.MaxSize = 8192

	exact := base
	exact.Width, exact.Height = 0, 0
	exact.PowerOfTwo = false
	exact.AutoGrow = true

	return []SettingsPreset{
		{Name: "Default", Description: "1024x1024 power-of-two atlas", IsBuiltIn: true, Settings: base},
		{Name: "Font", Description: "512x512 glyph atlas, no rotation", IsBuiltIn: true, Settings: font},
		{Name: "Mobile", Description: "Fixed 2048 limit with 2px bleed", IsBuiltIn: true, Settings: mobile},
		{Name: "Desktop", Description: "Grows up to 8192 with 2px bleed", IsBuiltIn: true, Settings: desktop},
		{Name: "Exact", Description: "Estimated container, exact output size", IsBuiltIn: true, Settings: exact},
	}
}

// FindPreset looks a preset up by name, case-insensitively. Custom presets
// take precedence over built-in ones with the same name.
func FindPreset(name string, custom []SettingsPreset) (SettingsPreset, bool) {
	for _, p := range custom {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	for _, p := range BuiltInPresets() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return SettingsPreset{}, false
}
