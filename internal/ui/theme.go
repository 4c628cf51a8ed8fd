package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LoadPlanTheme wraps the default Fyne theme with compact sizing overrides
// and an optional fixed light or dark variant.
type LoadPlanTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool // false follows the system variant
}

// NewLoadPlanTheme creates a theme for a preference value: "light", "dark"
// or anything else for the system default.
func NewLoadPlanTheme(name string) *LoadPlanTheme {
	t := &LoadPlanTheme{base: theme.DefaultTheme()}
	switch name {
	case "light":
		t.variant, t.fixed = theme.VariantLight, true
	case "dark":
		t.variant, t.fixed = theme.VariantDark, true
	}
	return t
}

// applyTheme installs the theme named in the preferences.
func applyTheme(name string) {
	if app := fyne.CurrentApp(); app != nil {
		app.Settings().SetTheme(NewLoadPlanTheme(name))
	}
}

func (t *LoadPlanTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.fixed {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *LoadPlanTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *LoadPlanTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *LoadPlanTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
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
