// Package export writes load plans to PDF reports, label sheets, spreadsheets
// and CAD drawings.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/LoadPlan/internal/geometry"
	"github.com/piwi3910/LoadPlan/internal/model"
)

// typeColor represents an RGB color for a cargo type.
type typeColor struct {
	R, G, B int
}

// typeColors mirrors the color scheme used by the view canvases.
var typeColors = []typeColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// colorFor returns the palette entry for a cargo type.
func colorFor(id model.TypeID) typeColor {
	i := int(id) - 1
	if i < 0 {
		i = 0
	}
	return typeColors[i%len(typeColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	viewGap      = 10.0
	captionH     = 5.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// ExportPDF generates a load plan report: one page with the top, side and
// front projections of the container, followed by a page with the cargo
// table, load status and remaining free space.
func ExportPDF(path string, project model.Project) error {
	plan := project.Plan
	if plan.Container.Length <= 0 || plan.Container.Width <= 0 || plan.Container.Height <= 0 {
		return fmt.Errorf("invalid container %.0f x %.0f x %.0f", plan.Container.Length, plan.Container.Width, plan.Container.Height)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderViewsPage(pdf, project)

	pdf.AddPage()
	renderSummaryPage(pdf, project)

	return pdf.OutputFileAndClose(path)
}

// viewsLayout places the three projections on the page: top above side in
// the left column, front on the right, all at one scale except the front
// view which uses the configured magnification.
type viewsLayout struct {
	scale      float64
	frontScale float64
	top        geometry.Point
	side       geometry.Point
	front      geometry.Point
}

func layoutViews(c model.Container, frontFactor float64) viewsLayout {
	if frontFactor <= 0 {
		frontFactor = 1
	}
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	// Horizontal: L*s + gap + W*s*f <= drawWidth.
	sx := (drawWidth - viewGap) / (c.Length + c.Width*frontFactor)
	// Left column: W*s + H*s + gap + captions <= drawHeight.
	sy := (drawHeight - viewGap - 2*captionH) / (c.Width + c.Height)
	// Front column: H*s*f + caption <= drawHeight.
	sf := (drawHeight - captionH) / (c.Height * frontFactor)
	scale := math.Min(sx, math.Min(sy, sf))

	topY := drawAreaTop + captionH
	sideY := topY + c.Width*scale + viewGap + captionH
	frontX := marginLeft + c.Length*scale + viewGap
	return viewsLayout{
		scale:      scale,
		frontScale: scale * frontFactor,
		top:        geometry.Point{X: marginLeft, Y: topY},
		side:       geometry.Point{X: marginLeft, Y: sideY},
		front:      geometry.Point{X: frontX, Y: topY},
	}
}

// renderViewsPage draws the header and the three projections.
func renderViewsPage(pdf *fpdf.Fpdf, project model.Project) {
	plan := project.Plan
	c := plan.Container

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s (%.0f x %.0f x %.0f mm)", project.Name, c.Label, c.Length, c.Width, c.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	status := model.CalculateLoadStatus(plan, project.Settings)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, statusLine(status), "", 0, "L", false, 0, "")

	layout := layoutViews(c, project.Settings.FrontScaleFactor)
	views := []struct {
		view   geometry.View
		origin geometry.Point
		scale  float64
	}{
		{geometry.Top, layout.top, layout.scale},
		{geometry.Side, layout.side, layout.scale},
		{geometry.Front, layout.front, layout.frontScale},
	}
	for _, v := range views {
		proj := geometry.Projection{View: v.view, Container: c, Scale: v.scale}
		renderView(pdf, proj, plan.Instances, v.origin)
	}
}

// statusLine formats the load status for the report header.
func statusLine(s model.LoadStatus) string {
	line := fmt.Sprintf("Boxes: %d of %d | Weight: %.0f / %.0f kg | Volume: %.2f / %.2f m3 | Fill: %.1f%%",
		s.Instances, s.RequestedBoxes, s.TotalWeightKg, s.MaxWeightKg, s.TotalVolumeM3, s.MaxVolumeM3, s.FillPercent)
	if s.Overweight {
		line += " | OVERWEIGHT"
	}
	if s.OverVolume {
		line += " | OVER VOLUME"
	}
	return line
}

// renderView draws one projection with its caption at the given page origin.
func renderView(pdf *fpdf.Fpdf, proj geometry.Projection, instances []model.CargoInstance, origin geometry.Point) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(origin.X, origin.Y-captionH)
	pdf.CellFormat(60, captionH-1, proj.View.String()+" view", "", 0, "L", false, 0, "")

	cr := proj.ContainerRect()
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(origin.X+cr.X, origin.Y+cr.Y, cr.W, cr.H, "FD")

	pdf.SetLineWidth(0.2)
	for _, inst := range proj.DrawOrder(instances) {
		r := proj.Project(inst.Box)
		col := colorFor(inst.TypeID)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(origin.X+r.X, origin.Y+r.Y, r.W, r.H, "FD")

		if r.W > 12 && r.H > 5 {
			pdf.SetFont("Helvetica", "", labelFontSize(r.W, r.H))
			labelW := pdf.GetStringWidth(inst.Name)
			if labelW < r.W-1 {
				pdf.SetXY(origin.X+r.X+(r.W-labelW)/2, origin.Y+r.Y+r.H/2-2)
				pdf.CellFormat(labelW, 4, inst.Name, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, proj, origin)
}

// drawDimensionAnnotations labels the horizontal extent below the view and
// the vertical extent to its left.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, proj geometry.Projection, origin geometry.Point) {
	cr := proj.ContainerRect()
	horiz, vert := cr.W/proj.Scale, cr.H/proj.Scale

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", horiz)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(origin.X+(cr.W-wLabelW)/2, origin.Y+cr.H)
	pdf.CellFormat(wLabelW, 3.5, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", vert)
	pdf.TransformBegin()
	pdf.TransformRotate(90, origin.X-2, origin.Y+cr.H/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(origin.X-2-hLabelW/2, origin.Y+cr.H/2-2)
	pdf.CellFormat(hLabelW, 3.5, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the cargo table, load status and free space.
func renderSummaryPage(pdf *fpdf.Fpdf, project model.Project) {
	plan := project.Plan

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cargo", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{12, 70, 20, 20, 20, 70, 30}
	headers := []string{"No", "Name", "Qty", "Placed", "Left", "Dimensions", "Weight"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, t := range plan.Types {
		if y > pageHeight-marginBottom-40 {
			pdf.AddPage()
			y = marginTop
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			t.Name,
			fmt.Sprintf("%d", t.Qty),
			fmt.Sprintf("%d", t.Placed),
			fmt.Sprintf("%d", t.Left()),
			fmt.Sprintf("%.0f x %.0f x %.0f mm", t.Length, t.Width, t.Height),
			fmt.Sprintf("%.0f kg", t.Weight),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		col := colorFor(t.ID)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos+2, y+1.5, 3, 3, "F")
		y += 6
	}

	status := model.CalculateLoadStatus(plan, project.Settings)
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Load Status", "", 0, "L", false, 0, "")
	y += 9

	statusItems := []struct {
		label string
		value string
		alert bool
	}{
		{"Boxes Placed", fmt.Sprintf("%d of %d", status.Instances, status.RequestedBoxes), false},
		{"Boxes Unplaced", fmt.Sprintf("%d", status.UnplacedBoxes), status.UnplacedBoxes > 0},
		{"Total Weight", fmt.Sprintf("%.0f / %.0f kg (%.1f%%)", status.TotalWeightKg, status.MaxWeightKg, status.WeightPercent), status.Overweight},
		{"Total Volume", fmt.Sprintf("%.2f / %.2f m3 (%.1f%%)", status.TotalVolumeM3, status.MaxVolumeM3, status.VolumePercent), status.OverVolume},
		{"Container Fill", fmt.Sprintf("%.1f%%", status.FillPercent), false},
		{"Gap", fmt.Sprintf("%.0f mm", project.Settings.Gap), false},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range statusItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		if item.alert {
			pdf.SetTextColor(200, 0, 0)
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		y += 7
	}

	regions := model.DetectFreeSpace(plan)
	if len(regions) > 0 && y < pageHeight-marginBottom-20 {
		y += 5
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, fmt.Sprintf("Free Space (%.2f m3)", model.TotalFreeVolume(regions)/1e9), "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		for _, r := range regions {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f x %.0f mm at (%.0f, %.0f, %.0f), %.2f m3",
				r.Label, r.Length, r.Width, r.Height, r.X, r.Y, r.Z, r.Volume()/1e9)
			pdf.CellFormat(220, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by LoadPlan - Cargo Container Layout", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 7
	case minDim > 10:
		return 6
	default:
		return 5
	}
}
