package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RodCut/internal/logs"
	"github.com/piwi3910/RodCut/internal/model"
)

// profileNames lists the built-in profiles followed by the custom ones.
func (a *App) profileNames() []string {
	names := model.GetProfileNames()
	for _, p := range a.profiles {
		names = append(names, p.Name)
	}
	return names
}

// showSettingsDialog edits the app preferences and the cut parameters used
// by the DXF and GCode exports.
func (a *App) showSettingsDialog() {
	cfg := a.config
	s := a.settings

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.1f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{ThemeSystem, ThemeLight, ThemeDark}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	logSelect := widget.NewSelect([]string{"debug", "info", "warn", "error"}, func(selected string) {
		cfg.LogLevel = selected
	})
	logSelect.SetSelected(cfg.LogLevel)

	profileSelect := widget.NewSelect(a.profileNames(), func(selected string) {
		s.GCodeProfile = selected
	})
	profileSelect.SetSelected(s.GCodeProfile)
	manageBtn := newIconButtonWithTooltip(theme.SettingsIcon(), "Manage GCode profiles", a.showProfileManager)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Log Level (next start)", logSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Unit Length (mm)", floatEntry(&s.UnitLength)),
		widget.NewFormItem("Rod Width (mm)", floatEntry(&s.RodWidth)),
		widget.NewFormItem("Kerf Width (mm)", floatEntry(&s.KerfWidth)),
		widget.NewFormItem("Feed Rate (mm/min)", floatEntry(&s.FeedRate)),
		widget.NewFormItem("Plunge Rate (mm/min)", floatEntry(&s.PlungeRate)),
		widget.NewFormItem("Spindle Speed (RPM)", intEntry(&s.SpindleSpeed)),
		widget.NewFormItem("Safe Z (mm)", floatEntry(&s.SafeZ)),
		widget.NewFormItem("Cut Depth (mm)", floatEntry(&s.CutDepth)),
		widget.NewFormItem("Pass Depth (mm)", floatEntry(&s.PassDepth)),
		widget.NewFormItem("GCode Profile", container.NewBorder(nil, nil, nil, manageBtn, profileSelect)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if err := validateCutSettings(s); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if _, err := logs.ParseLevel(cfg.LogLevel); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.settings = s
			cfg.UnitLength = s.UnitLength
			cfg.GCodeProfile = s.GCodeProfile
			a.config = cfg
			a.setTheme(cfg.Theme)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 560))
	d.Show()
}

// validateCutSettings rejects values the exporters cannot draw or cut with.
func validateCutSettings(s model.CutSettings) error {
	switch {
	case s.UnitLength <= 0:
		return fmt.Errorf("unit length must be positive")
	case s.RodWidth <= 0:
		return fmt.Errorf("rod width must be positive")
	case s.KerfWidth < 0:
		return fmt.Errorf("kerf width cannot be negative")
	case s.FeedRate <= 0 || s.PlungeRate <= 0:
		return fmt.Errorf("feed and plunge rates must be positive")
	case s.CutDepth <= 0 || s.PassDepth <= 0:
		return fmt.Errorf("cut and pass depth must be positive")
	}
	return nil
}
