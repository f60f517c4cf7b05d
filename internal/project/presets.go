package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/RodCut/internal/model"
)

// DefaultPresetPath returns the default file path for the custom preset
// store, ~/.rodcut/presets.json.
func DefaultPresetPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset store to a JSON file.
func SavePresets(path string, store model.PresetStore) error {
	return writeJSON(path, store)
}

// LoadPresets reads a preset store from a JSON file.
// If the file does not exist, returns an empty store. Presets whose price
// table no longer validates are dropped.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}
	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, err
	}
	valid := make([]model.Preset, 0, len(store.Presets))
	for _, p := range store.Presets {
		if p.Problem().Validate() == nil {
			p.BuiltIn = false
			valid = append(valid, p)
		}
	}
	store.Presets = valid
	return store, nil
}

// LoadDefaultPresets loads presets from the default path.
func LoadDefaultPresets() (model.PresetStore, error) {
	return LoadPresets(DefaultPresetPath())
}

// SaveDefaultPresets saves presets to the default path.
func SaveDefaultPresets(store model.PresetStore) error {
	return SavePresets(DefaultPresetPath(), store)
}
