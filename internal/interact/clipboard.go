package interact

import (
	"github.com/piwi3910/LoadPlan/internal/geometry"
	"github.com/piwi3910/LoadPlan/internal/model"
)

// ClipEntry is a copied instance. Offsets are measured from the minimum
// corner of the copied selection; the absolute position is kept for the
// axis a view does not show.
type ClipEntry struct {
	TypeID model.TypeID
	Name   string
	Weight float64
	Box    model.Box // position and dimensions at copy time
	OffX   float64
	OffY   float64
	OffZ   float64
}

// PasteFailure records a clipboard entry that could not be placed.
type PasteFailure struct {
	Entry ClipEntry
	Err   error
}

// PasteResult reports the outcome of a paste.
type PasteResult struct {
	Placed []model.InstanceID
	Failed []PasteFailure
}

// Copy snapshots the selected instances into the clipboard and returns how
// many were copied. An empty selection leaves the clipboard unchanged.
func (c *Controller) Copy() int {
	var insts []model.CargoInstance
	for _, id := range c.selection {
		if inst, ok := c.layout.Instance(id); ok {
			insts = append(insts, inst)
		}
	}
	if len(insts) == 0 {
		return 0
	}

	minX, minY, minZ := insts[0].X, insts[0].Y, insts[0].Z
	for _, inst := range insts[1:] {
		minX = min(minX, inst.X)
		minY = min(minY, inst.Y)
		minZ = min(minZ, inst.Z)
	}

	c.clipboard = make([]ClipEntry, len(insts))
	for i, inst := range insts {
		c.clipboard[i] = ClipEntry{
			TypeID: inst.TypeID,
			Name:   inst.Name,
			Weight: inst.Weight,
			Box:    inst.Box,
			OffX:   inst.X - minX,
			OffY:   inst.Y - minY,
			OffZ:   inst.Z - minZ,
		}
	}
	return len(c.clipboard)
}

// Clipboard returns a copy of the clipboard contents.
func (c *Controller) Clipboard() []ClipEntry {
	out := make([]ClipEntry, len(c.clipboard))
	copy(out, c.clipboard)
	return out
}

// PasteAt places the clipboard entries relative to a pointer position in
// view. Each entry lands at the anchor minus its offset on the view's plane
// axes, is clamped to the container and settles onto whatever is below it.
// Entries are placed one at a time in clipboard order; entries that fail are
// skipped and reported. The placed instances become the new selection.
func (c *Controller) PasteAt(view geometry.View, pt geometry.Point) PasteResult {
	var res PasteResult
	if len(c.clipboard) == 0 {
		return res
	}
	proj := c.views.For(view)
	u, v := proj.Unproject(pt)
	uAxis, vAxis := proj.Axes()
	ct := c.layout.Container()

	for _, e := range c.clipboard {
		box := anchorAxis(e.Box, e, uAxis, u)
		box = anchorAxis(box, e, vAxis, v)
		box.X = model.Clamp(box.X, box.Length, ct.Length)
		box.Y = model.Clamp(box.Y, box.Width, ct.Width)
		box.Z = c.layout.RestingZ(box.X, box.Y, box.Length, box.Width)

		id, err := c.layout.PlaceAt(e.TypeID, box, e.Name, e.Weight)
		if err != nil {
			res.Failed = append(res.Failed, PasteFailure{Entry: e, Err: err})
			continue
		}
		res.Placed = append(res.Placed, id)
	}

	if len(res.Placed) > 0 {
		c.SetSelection(res.Placed...)
	}
	return res
}

// anchorAxis puts the entry at its copied offset from the anchor along axis.
// z is left alone since pasted boxes always settle.
func anchorAxis(box model.Box, e ClipEntry, axis geometry.Axis, at float64) model.Box {
	switch axis {
	case geometry.AxisX:
		box.X = at - e.OffX
	case geometry.AxisY:
		box.Y = at - e.OffY
	}
	return box
}
