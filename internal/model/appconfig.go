package model

// Playback speed levels. Level 1 is slowest.
const (
	MinSpeed     = 1
	MaxSpeed     = 10
	DefaultSpeed = 5
)

// AppConfig holds application-wide preferences.
type AppConfig struct {
	Speed        int      `json:"speed"`       // 1 (slowest) .. 10 (fastest)
	Theme        string   `json:"theme"`       // "light", "dark", "system"
	LastPreset   string   `json:"last_preset"` // preset ID, empty for a custom table
	LastProblem  *Problem `json:"last_problem,omitempty"`
	TutorialDone bool     `json:"tutorial_done"`

	// Cut program / drawing defaults
	UnitLength   float64 `json:"unit_length"` // mm per rod unit
	GCodeProfile string  `json:"gcode_profile"`

	RecentFiles []string `json:"recent_files"`
	LogLevel    string   `json:"log_level"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Speed:        DefaultSpeed,
		Theme:        "system",
		LastPreset:   DefaultPresetID,
		UnitLength:   DefaultCutSettings().UnitLength,
		GCodeProfile: DefaultCutSettings().GCodeProfile,
		RecentFiles:  []string{},
		LogLevel:     "info",
	}
}

// ClampSpeed forces a speed level into [MinSpeed, MaxSpeed].
func ClampSpeed(speed int) int {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}

// ApplyToSettings copies the cut-program defaults into s.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	if c.UnitLength > 0 {
		s.UnitLength = c.UnitLength
	}
	if c.GCodeProfile != "" {
		s.GCodeProfile = c.GCodeProfile
	}
}

// AddRecentFile puts path at the front of the recent list, de-duplicated
// and capped at max entries.
func (c *AppConfig) AddRecentFile(path string, max int) {
	files := []string{path}
	for _, f := range c.RecentFiles {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > max {
		files = files[:max]
	}
	c.RecentFiles = files
}
