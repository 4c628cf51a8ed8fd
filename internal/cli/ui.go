package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError   = lipgloss.NewStyle().Foreground(colorRed)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+StyleError.Render(fmt.Sprintf(format, args...)))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	printKeyValueWidth(w, 14, key, value)
}

func printKeyValueWidth(w io.Writer, width int, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(width)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Load Summary
// =============================================================================

// printTypeTable prints one line per cargo type with placed and left counts.
func printTypeTable(w io.Writer, types []model.CargoType) {
	nameWidth := 4
	for _, t := range types {
		nameWidth = max(nameWidth, lipgloss.Width(t.Name))
	}
	nameStyle := lipgloss.NewStyle().Width(nameWidth + 2)
	header := nameStyle.Render("Name") + fmt.Sprintf("%8s %8s %8s  %s", "Qty", "Placed", "Left", "Dimensions (mm)")
	fmt.Fprintln(w, StyleDim.Render(header))
	for _, t := range types {
		left := fmt.Sprintf("%8d", t.Left())
		if t.Left() > 0 {
			left = StyleWarning.Render(left)
		} else {
			left = StyleSuccess.Render(left)
		}
		fmt.Fprintf(w, "%s%8d %8d %s  %.0f x %.0f x %.0f\n",
			nameStyle.Render(t.Name), t.Qty, t.Placed, left, t.Length, t.Width, t.Height)
	}
}

// printStatus prints the load status block.
func printStatus(w io.Writer, c model.Container, s model.LoadStatus) {
	printKeyValue(w, "Container", fmt.Sprintf("%s (%.0f x %.0f x %.0f mm)", c.Label, c.Length, c.Width, c.Height))
	printKeyValue(w, "Boxes", StyleNumber.Render(fmt.Sprintf("%d", s.Instances))+fmt.Sprintf(" of %d", s.RequestedBoxes))

	weight := fmt.Sprintf("%.0f / %.0f kg (%.1f%%)", s.TotalWeightKg, s.MaxWeightKg, s.WeightPercent)
	if s.Overweight {
		weight = StyleError.Render(weight + " OVERWEIGHT")
	}
	printKeyValue(w, "Weight", weight)

	volume := fmt.Sprintf("%.2f / %.2f m3 (%.1f%%)", s.TotalVolumeM3, s.MaxVolumeM3, s.VolumePercent)
	if s.OverVolume {
		volume = StyleError.Render(volume + " OVER VOLUME")
	}
	printKeyValue(w, "Volume", volume)
	printKeyValue(w, "Fill", fmt.Sprintf("%.1f%%", s.FillPercent))
}
