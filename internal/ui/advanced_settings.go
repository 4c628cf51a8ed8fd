package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// showLayoutSettingsDialog edits the placement and display settings of the
// open project.
func (a *App) showLayoutSettingsDialog() {
	s := a.sess.Settings()

	// Helper to create a bound float entry
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(formatNumber(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	placementSection := widget.NewCard("Placement",
		"Spacing between boxes laid out by batch placement",
		container.NewGridWithColumns(2,
			widget.NewLabel("Gap (mm)"), floatEntry(&s.Gap),
		))

	displaySection := widget.NewCard("Display",
		"The front view is drawn larger since the container is narrow",
		container.NewGridWithColumns(2,
			widget.NewLabel("Scale (px/mm)"), floatEntry(&s.Scale),
			widget.NewLabel("Front View Factor"), floatEntry(&s.FrontScaleFactor),
			widget.NewLabel("Canvas Margin (px)"), floatEntry(&s.Margin),
		))

	limitsSection := widget.NewCard("Load Limits", "Used for the overweight and over-volume warnings",
		container.NewGridWithColumns(2,
			widget.NewLabel("Max Payload (kg)"), floatEntry(&s.MaxWeightKg),
			widget.NewLabel("Max Volume (m³)"), floatEntry(&s.MaxVolumeM3),
		))

	content := container.NewVBox(placementSection, displaySection, limitsSection)

	d := dialog.NewCustomConfirm("Layout Settings", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if err := validateSettings(s); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.sess.SetSettings(s)
	}, a.window)
	d.Resize(fyne.NewSize(480, 520))
	d.Show()
}

// validateSettings rejects values the layout or the projections cannot use.
func validateSettings(s model.Settings) error {
	switch {
	case s.Gap < 0:
		return &model.ValidationError{Field: "gap", Message: fmt.Sprintf("must be >= 0, got %g", s.Gap)}
	case s.Scale <= 0:
		return &model.ValidationError{Field: "scale", Message: fmt.Sprintf("must be > 0, got %g", s.Scale)}
	case s.FrontScaleFactor <= 0:
		return &model.ValidationError{Field: "front_scale_factor", Message: fmt.Sprintf("must be > 0, got %g", s.FrontScaleFactor)}
	case s.Margin < 0:
		return &model.ValidationError{Field: "margin", Message: fmt.Sprintf("must be >= 0, got %g", s.Margin)}
	case s.MaxWeightKg < 0 || s.MaxVolumeM3 < 0:
		return &model.ValidationError{Field: "limits", Message: "must be >= 0"}
	}
	return nil
}
