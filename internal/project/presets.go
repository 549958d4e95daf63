package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/atlaspack/internal/model"
)

// DefaultPresetsPath returns the default file path for custom presets.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SaveCustomPresets saves custom presets to a JSON file.
func SaveCustomPresets(path string, presets []model.SettingsPreset) error {
	return writeJSON(path, presets)
}

// LoadCustomPresets loads custom presets from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomPresets(path string) ([]model.SettingsPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.SettingsPreset{}, nil
		}
		return nil, err
	}

	var presets []model.SettingsPreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, err
	}

	// Ensure loaded presets are not marked as built-in
	for i := range presets {
		presets[i].IsBuiltIn = false
	}
	return presets, nil
}

// ExportPreset exports a single preset to a JSON file (for sharing).
func ExportPreset(path string, preset model.SettingsPreset) error {
	preset.IsBuiltIn = false
	return writeJSON(path, preset)
}

// ImportPreset imports a single preset from a JSON file.
func ImportPreset(path string) (model.SettingsPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SettingsPreset{}, err
	}

	var preset model.SettingsPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return model.SettingsPreset{}, err
	}

	preset.IsBuiltIn = false
	if preset.Name == "" {
		return model.SettingsPreset{}, errors.New("imported preset has no name")
	}
	return preset, nil
}
