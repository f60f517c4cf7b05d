package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/RodCut/internal/model"
)

// SessionExt is the file extension for saved sessions.
const SessionExt = ".rodcut"

const sessionVersion = "1.0.0"

// Session is a saved visualizer state: the problem being solved, the preset
// it came from and how far playback had got.
type Session struct {
	Version   string        `json:"version"`
	SavedAt   string        `json:"saved_at"`
	Problem   model.Problem `json:"problem"`
	PresetID  string        `json:"preset_id,omitempty"`
	StepIndex int           `json:"step_index"`
}

// NewSession stamps a session with the current version and time. A
// negative stepIndex means the trace was not initialized.
func NewSession(problem model.Problem, presetID string, stepIndex int) Session {
	return Session{
		Version:   sessionVersion,
		SavedAt:   time.Now().UTC().Format(time.RFC3339),
		Problem:   problem.Clone(),
		PresetID:  presetID,
		StepIndex: stepIndex,
	}
}

// SaveSession writes a session file.
func SaveSession(path string, s Session) error {
	if err := s.Problem.Validate(); err != nil {
		return fmt.Errorf("cannot save session: %w", err)
	}
	if err := writeJSON(path, s); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// LoadSession reads a session file and validates its problem. StepIndex is
// left for the caller to clamp against the regenerated trace.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("failed to parse session: %w", err)
	}
	if s.Version == "" {
		return Session{}, fmt.Errorf("invalid session file: missing version field")
	}
	if err := s.Problem.Validate(); err != nil {
		return Session{}, fmt.Errorf("invalid session file: %w", err)
	}
	return s, nil
}
