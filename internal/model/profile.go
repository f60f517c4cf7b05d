package model

import "fmt"

// CutSettings holds the physical parameters used when an optimal plan is
// turned into a drawing or a machine program.
type CutSettings struct {
	UnitLength float64 `json:"unit_length"` // mm per rod unit
	RodWidth   float64 `json:"rod_width"`   // stock width across the cut, mm
	KerfWidth  float64 `json:"kerf_width"`  // blade/bit width in mm

	FeedRate     float64 `json:"feed_rate"`     // cutting feed rate mm/min
	PlungeRate   float64 `json:"plunge_rate"`   // plunge feed rate mm/min
	SpindleSpeed int     `json:"spindle_speed"` // RPM
	SafeZ        float64 `json:"safe_z"`        // safe retract height mm
	CutDepth     float64 `json:"cut_depth"`     // total material thickness mm
	PassDepth    float64 `json:"pass_depth"`    // depth per pass mm

	GCodeProfile string `json:"gcode_profile"`
}

func DefaultCutSettings() CutSettings {
	return CutSettings{
		UnitLength:   100.0,
		RodWidth:     40.0,
		KerfWidth:    3.2,
		FeedRate:     1200.0,
		PlungeRate:   400.0,
		SpindleSpeed: 18000,
		SafeZ:        5.0,
		CutDepth:     20.0,
		PassDepth:    5.0,
		GCodeProfile: "Generic",
	}
}

// GCodeProfile defines a post-processor configuration for a CNC controller.
type GCodeProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsBuiltIn   bool   `json:"is_built_in"`

	StartCode    []string `json:"start_code"`
	SpindleStart string   `json:"spindle_start"` // e.g. "M3 S%d"
	SpindleStop  string   `json:"spindle_stop"`
	RapidMove    string   `json:"rapid_move"`
	FeedMove     string   `json:"feed_move"`
	EndCode      []string `json:"end_code"` // "[SafeZ]" is substituted

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`
	DecimalPlaces int    `json:"decimal_places"`
}

// Built-in GCode profiles
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Standard Grbl configuration (Arduino CNC shields)",
		StartCode:     []string{"G90", "G21", "G17"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
		IsBuiltIn:     true,
	},
	{
		Name:          "Mach3",
		Description:   "Mach3 CNC control software",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G28 X0 Y0", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
		IsBuiltIn:     true,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC (formerly EMC2)",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
		IsBuiltIn:     true,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		StartCode:     []string{"G90", "G21"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
		IsBuiltIn:     true,
	},
}

// GetProfile returns a GCode profile by name, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1]
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	return names
}

// ResolveProfile looks name up among the custom profiles first, then the
// built-ins, falling back to Generic.
func ResolveProfile(name string, custom []GCodeProfile) GCodeProfile {
	for _, p := range custom {
		if p.Name == name {
			return p
		}
	}
	return GetProfile(name)
}

// Validate reports whether the profile can drive the generator.
func (p GCodeProfile) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("profile has no name")
	case p.RapidMove == "" || p.FeedMove == "":
		return fmt.Errorf("profile %q must define rapid and feed moves", p.Name)
	case p.DecimalPlaces < 0 || p.DecimalPlaces > 6:
		return fmt.Errorf("profile %q: decimal places must be 0-6, got %d", p.Name, p.DecimalPlaces)
	}
	return nil
}
