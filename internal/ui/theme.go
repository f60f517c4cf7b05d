// Package ui provides the RodCut visualizer UI components.
//
// This file defines a custom compact Fyne theme with a switchable light/dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme names stored in AppConfig.Theme.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// RodCutTheme wraps the default Fyne theme with compact sizing overrides
// and an optional forced light or dark variant.
type RodCutTheme struct {
	base   fyne.Theme
	name   string
	forced fyne.ThemeVariant
}

// NewRodCutTheme creates a theme for one of ThemeSystem, ThemeLight or
// ThemeDark. Unknown names follow the system.
func NewRodCutTheme(name string) *RodCutTheme {
	t := &RodCutTheme{base: theme.DefaultTheme()}
	t.SetName(name)
	return t
}

// SetName switches the variant.
func (t *RodCutTheme) SetName(name string) {
	switch name {
	case ThemeLight:
		t.name, t.forced = ThemeLight, theme.VariantLight
	case ThemeDark:
		t.name, t.forced = ThemeDark, theme.VariantDark
	default:
		t.name = ThemeSystem
	}
}

// Name returns the configured theme name.
func (t *RodCutTheme) Name() string { return t.name }

// Toggled returns the name a theme toggle switches to. A system theme
// switches away from the variant currently on screen.
func (t *RodCutTheme) Toggled(current fyne.ThemeVariant) string {
	v := current
	if t.name != ThemeSystem {
		v = t.forced
	}
	if v == theme.VariantDark {
		return ThemeLight
	}
	return ThemeDark
}

// Color delegates to the base theme, forcing the variant unless the
// system one is in use.
func (t *RodCutTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.name != ThemeSystem {
		variant = t.forced
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *RodCutTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *RodCutTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *RodCutTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
