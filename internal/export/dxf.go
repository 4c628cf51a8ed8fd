package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// DXF layer names.
const (
	LayerContainer = "CONTAINER"
	LayerCargo     = "CARGO"
	LayerLabels    = "LABELS"
)

// ExportDXF writes the plan as a 3D wireframe: the container outline on one
// layer, each placed box as twelve edges on another and the box names as
// text on the top face. Coordinates are in millimetres.
func ExportDXF(path string, plan model.Plan) error {
	d := dxf.NewDrawing()

	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerContainer, color.Red},
		{LayerCargo, color.Cyan},
		{LayerLabels, color.White},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	c := plan.Container
	if err := d.ChangeLayer(LayerContainer); err != nil {
		return fmt.Errorf("failed to select layer: %w", err)
	}
	if err := drawBoxEdges(d, model.Box{Length: c.Length, Width: c.Width, Height: c.Height}); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerCargo); err != nil {
		return fmt.Errorf("failed to select layer: %w", err)
	}
	for _, inst := range plan.Instances {
		if err := drawBoxEdges(d, inst.Box); err != nil {
			return fmt.Errorf("failed to draw %s #%d: %w", inst.Name, inst.ID, err)
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return fmt.Errorf("failed to select layer: %w", err)
	}
	for _, inst := range plan.Instances {
		height := min(inst.Length, inst.Width) / 8
		if _, err := d.Text(inst.Name, inst.X+height/2, inst.Y+height/2, inst.MaxZ(), height); err != nil {
			return fmt.Errorf("failed to label %s #%d: %w", inst.Name, inst.ID, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// BoxEdges returns the twelve edges of a box as start/end corner pairs.
func BoxEdges(b model.Box) [12][2][3]float64 {
	x0, y0, z0 := b.X, b.Y, b.Z
	x1, y1, z1 := b.MaxX(), b.MaxY(), b.MaxZ()
	corners := [8][3]float64{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0},
		{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
	}
	pairs := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // floor
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // uprights
	}
	var edges [12][2][3]float64
	for i, p := range pairs {
		edges[i] = [2][3]float64{corners[p[0]], corners[p[1]]}
	}
	return edges
}

func drawBoxEdges(d *drawing.Drawing, b model.Box) error {
	for _, e := range BoxEdges(b) {
		if _, err := d.Line(e[0][0], e[0][1], e[0][2], e[1][0], e[1][1], e[1][2]); err != nil {
			return fmt.Errorf("failed to draw edge: %w", err)
		}
	}
	return nil
}
