package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.Speed != DefaultSpeed {
		t.Errorf("expected speed %d, got %d", DefaultSpeed, cfg.Speed)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
	if cfg.LastPreset != DefaultPresetID {
		t.Errorf("expected last preset %q, got %q", DefaultPresetID, cfg.LastPreset)
	}
	if cfg.RecentFiles == nil {
		t.Error("RecentFiles should not be nil")
	}
	if cfg.UnitLength != DefaultCutSettings().UnitLength {
		t.Errorf("expected unit length %f, got %f", DefaultCutSettings().UnitLength, cfg.UnitLength)
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.UnitLength = 250
	cfg.GCodeProfile = "Grbl"

	s := DefaultCutSettings()
	cfg.ApplyToSettings(&s)

	if s.UnitLength != 250 {
		t.Errorf("expected UnitLength=250, got %f", s.UnitLength)
	}
	if s.GCodeProfile != "Grbl" {
		t.Errorf("expected GCodeProfile=Grbl, got %s", s.GCodeProfile)
	}

	// Zero values leave the settings alone
	empty := AppConfig{}
	s2 := DefaultCutSettings()
	empty.ApplyToSettings(&s2)
	if s2.UnitLength != DefaultCutSettings().UnitLength {
		t.Errorf("zero UnitLength should not override, got %f", s2.UnitLength)
	}
}

func TestClampSpeed(t *testing.T) {
	cases := map[int]int{-3: MinSpeed, 0: MinSpeed, 1: 1, 5: 5, 10: 10, 11: MaxSpeed}
	for in, want := range cases {
		if got := ClampSpeed(in); got != want {
			t.Errorf("ClampSpeed(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestAddRecentFile(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentFile("a.rodcut", 3)
	cfg.AddRecentFile("b.rodcut", 3)
	cfg.AddRecentFile("a.rodcut", 3)
	cfg.AddRecentFile("c.rodcut", 3)
	cfg.AddRecentFile("d.rodcut", 3)

	want := []string{"d.rodcut", "c.rodcut", "a.rodcut"}
	if len(cfg.RecentFiles) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentFiles)
	}
	for i := range want {
		if cfg.RecentFiles[i] != want[i] {
			t.Errorf("RecentFiles[%d] = %q, want %q", i, cfg.RecentFiles[i], want[i])
		}
	}
}

func TestGetProfile(t *testing.T) {
	if p := GetProfile("Grbl"); p.Name != "Grbl" {
		t.Errorf("expected Grbl profile, got %s", p.Name)
	}
	if p := GetProfile("does-not-exist"); p.Name != "Generic" {
		t.Errorf("expected Generic fallback, got %s", p.Name)
	}
	if names := GetProfileNames(); len(names) != len(GCodeProfiles) {
		t.Errorf("expected %d names, got %d", len(GCodeProfiles), len(names))
	}
}

func TestResolveProfile(t *testing.T) {
	custom := []GCodeProfile{{Name: "Shop Saw", RapidMove: "G0", FeedMove: "G1", DecimalPlaces: 2}}

	if p := ResolveProfile("Shop Saw", custom); p.Name != "Shop Saw" || p.IsBuiltIn {
		t.Errorf("expected the custom profile, got %+v", p)
	}
	if p := ResolveProfile("Mach3", custom); p.Name != "Mach3" || !p.IsBuiltIn {
		t.Errorf("expected built-in Mach3, got %+v", p)
	}
	if p := ResolveProfile("missing", nil); p.Name != "Generic" {
		t.Errorf("expected Generic fallback, got %s", p.Name)
	}
}

func TestGCodeProfileValidate(t *testing.T) {
	for _, p := range GCodeProfiles {
		if err := p.Validate(); err != nil {
			t.Errorf("built-in profile %s invalid: %v", p.Name, err)
		}
	}

	bad := []GCodeProfile{
		{},
		{Name: "NoMoves"},
		{Name: "TooPrecise", RapidMove: "G0", FeedMove: "G1", DecimalPlaces: 9},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("expected error for %+v", p)
		}
	}
}
