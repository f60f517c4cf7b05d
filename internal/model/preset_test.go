package model

import (
	"testing"
)

func TestBuiltInPresetsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Presets {
		if err := p.Problem().Validate(); err != nil {
			t.Errorf("preset %q is invalid: %v", p.ID, err)
		}
		if seen[p.ID] {
			t.Errorf("duplicate preset id %q", p.ID)
		}
		seen[p.ID] = true
		if !p.BuiltIn {
			t.Errorf("preset %q should be marked built-in", p.ID)
		}
	}
	if _, ok := FindPreset(DefaultPresetID); !ok {
		t.Errorf("default preset %q not found", DefaultPresetID)
	}
}

func TestNewPreset(t *testing.T) {
	prices := []int{3, 4}
	p := NewPreset("Mine", "custom table", NewProblem(2, prices))
	prices[0] = 99

	if p.ID == "" {
		t.Error("expected non-empty ID")
	}
	if p.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if p.Prices[0] != 3 {
		t.Errorf("preset should copy prices, got %v", p.Prices)
	}
	if p.BuiltIn {
		t.Error("custom preset must not be built-in")
	}
}

func TestPresetStore_AddRemoveFind(t *testing.T) {
	store := NewPresetStore()
	custom := NewPreset("Mine", "", NewProblem(2, []int{1, 3}))
	custom.BuiltIn = true
	store.Add(custom)

	if len(store.Presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(store.Presets))
	}
	if store.Presets[0].BuiltIn {
		t.Error("Add should clear the built-in flag")
	}

	found, ok := store.Find(custom.ID)
	if !ok || found.Label != "Mine" {
		t.Errorf("expected to find custom preset, got %+v", found)
	}
	if _, ok := store.Find("classic"); !ok {
		t.Error("Find should also search built-in presets")
	}
	if byLabel, ok := store.FindByLabel("Timber"); !ok || byLabel.ID != "timber" {
		t.Errorf("FindByLabel(Timber) = %+v, %v", byLabel, ok)
	}

	labels := store.Labels()
	if len(labels) != len(Presets)+1 || labels[len(labels)-1] != "Mine" {
		t.Errorf("unexpected labels %v", labels)
	}

	if !store.Remove(custom.ID) {
		t.Error("Remove should report success")
	}
	if store.Remove(custom.ID) {
		t.Error("second Remove should report false")
	}
	if len(store.Presets) != 0 {
		t.Errorf("expected empty store, got %d", len(store.Presets))
	}
}
