package model

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a named, reusable price table.
type Preset struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	RodLength   int    `json:"rod_length"`
	Prices      []int  `json:"prices"`
	BuiltIn     bool   `json:"built_in"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Problem returns the preset as a solvable problem.
func (p Preset) Problem() Problem {
	return NewProblem(p.RodLength, p.Prices)
}

// Presets is the built-in catalogue.
var Presets = []Preset{
	{
		ID:          "classic",
		Label:       "Classic",
		Description: "The textbook example: short pieces are surprisingly valuable.",
		RodLength:   8,
		Prices:      []int{1, 5, 8, 9, 10, 17, 17, 20},
		BuiltIn:     true,
	},
	{
		ID:          "increasing",
		Label:       "Increasing",
		Description: "Longer pieces earn more per unit. Is cutting ever worth it?",
		RodLength:   8,
		Prices:      []int{1, 3, 6, 10, 15, 21, 28, 36},
		BuiltIn:     true,
	},
	{
		ID:          "bulk",
		Label:       "Bulk Discount",
		Description: "Diminishing returns; short pieces dominate.",
		RodLength:   8,
		Prices:      []int{10, 18, 22, 25, 27, 28, 29, 30},
		BuiltIn:     true,
	},
	{
		ID:          "timber",
		Label:       "Timber",
		Description: "Realistic timber pricing with mixed optimal cuts.",
		RodLength:   10,
		Prices:      []int{2, 5, 7, 9, 10, 12, 13, 14, 16, 18},
		BuiltIn:     true,
	},
	{
		ID:          "challenge",
		Label:       "Challenge",
		Description: "Can you predict the answer before running it?",
		RodLength:   12,
		Prices:      []int{3, 5, 10, 11, 13, 17, 17, 20, 24, 28, 31, 35},
		BuiltIn:     true,
	},
}

// DefaultPresetID is the preset loaded on first start.
const DefaultPresetID = "classic"

// NewPreset creates a custom preset with a generated ID.
func NewPreset(label, description string, problem Problem) Preset {
	return Preset{
		ID:          uuid.New().String()[:8],
		Label:       label,
		Description: description,
		RodLength:   problem.RodLength,
		Prices:      copyInts(problem.Prices),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// PresetStore holds the user's custom presets.
type PresetStore struct {
	Presets []Preset `json:"presets"`
}

func NewPresetStore() PresetStore {
	return PresetStore{Presets: []Preset{}}
}

// Add appends a preset. Built-in flags are cleared.
func (ps *PresetStore) Add(p Preset) {
	p.BuiltIn = false
	ps.Presets = append(ps.Presets, p)
}

// Remove deletes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// All returns the built-in catalogue followed by the custom presets.
func (ps *PresetStore) All() []Preset {
	all := make([]Preset, 0, len(Presets)+len(ps.Presets))
	all = append(all, Presets...)
	all = append(all, ps.Presets...)
	return all
}

// Find looks a preset up by ID in the built-ins first, then the store.
func (ps *PresetStore) Find(id string) (Preset, bool) {
	for _, p := range ps.All() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// FindByLabel returns the first preset with the given label.
func (ps *PresetStore) FindByLabel(label string) (Preset, bool) {
	for _, p := range ps.All() {
		if p.Label == label {
			return p, true
		}
	}
	return Preset{}, false
}

// Labels returns preset labels for UI dropdowns.
func (ps *PresetStore) Labels() []string {
	all := ps.All()
	labels := make([]string, len(all))
	for i, p := range all {
		labels[i] = p.Label
	}
	return labels
}

// FindPreset looks up a built-in preset by ID.
func FindPreset(id string) (Preset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
