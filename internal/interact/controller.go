// Package interact turns pointer gestures on the three views into layout
// changes: selection, drag and group move, rotation, removal and
// copy/paste.
package interact

import (
	"fmt"
	"slices"

	"github.com/piwi3910/LoadPlan/internal/engine"
	"github.com/piwi3910/LoadPlan/internal/geometry"
	"github.com/piwi3910/LoadPlan/internal/model"
)

// Controller holds the ephemeral interaction state for one layout. It is not
// safe for concurrent use.
type Controller struct {
	layout *engine.Layout
	views  geometry.Set

	selection []model.InstanceID
	clipboard []ClipEntry
	drag      *dragState
}

type dragState struct {
	view  geometry.View
	ids   []model.InstanceID
	last  geometry.Point
	moved bool
}

// New creates a controller bound to a layout and its projections.
func New(layout *engine.Layout, views geometry.Set) *Controller {
	return &Controller{layout: layout, views: views}
}

func (c *Controller) Views() geometry.Set { return c.views }

// SetViews replaces the projections, e.g. after a scale change.
func (c *Controller) SetViews(views geometry.Set) { c.views = views }

// ─── Selection ─────────────────────────────────────────────

// Selection returns the selected instance ids in ascending order.
func (c *Controller) Selection() []model.InstanceID {
	return slices.Clone(c.selection)
}

func (c *Controller) IsSelected(id model.InstanceID) bool {
	_, found := slices.BinarySearch(c.selection, id)
	return found
}

// SetSelection replaces the selection. Unknown ids are ignored.
func (c *Controller) SetSelection(ids ...model.InstanceID) {
	c.selection = c.selection[:0]
	c.addToSelection(ids)
}

func (c *Controller) ClearSelection() {
	c.selection = nil
}

// SelectRect selects every instance whose projection in view touches the
// rectangle spanned by a and b. With extend the hits are added to the
// current selection instead of replacing it.
func (c *Controller) SelectRect(view geometry.View, a, b geometry.Point, extend bool) []model.InstanceID {
	if !extend {
		c.selection = c.selection[:0]
	}
	hits := c.views.For(view).Within(c.layout.Instances(), geometry.RectFromPoints(a, b))
	c.addToSelection(hits)
	return c.Selection()
}

// Prune drops selected ids that no longer exist in the layout.
func (c *Controller) Prune() {
	c.selection = slices.DeleteFunc(c.selection, func(id model.InstanceID) bool {
		_, ok := c.layout.Instance(id)
		return !ok
	})
}

func (c *Controller) addToSelection(ids []model.InstanceID) {
	for _, id := range ids {
		if _, ok := c.layout.Instance(id); !ok {
			continue
		}
		pos, found := slices.BinarySearch(c.selection, id)
		if !found {
			c.selection = slices.Insert(c.selection, pos, id)
		}
	}
}

// ─── Hit testing ───────────────────────────────────────────

// InstanceAt returns the front-most instance under a canvas point.
func (c *Controller) InstanceAt(view geometry.View, pt geometry.Point) (model.CargoInstance, bool) {
	return c.views.For(view).HitTest(c.layout.Instances(), pt)
}

// InfoAt returns the hover text for the instance under a canvas point.
func (c *Controller) InfoAt(view geometry.View, pt geometry.Point) (string, bool) {
	inst, ok := c.InstanceAt(view, pt)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s  %g kg", inst.Name, inst.Weight), true
}

// ─── Drag ──────────────────────────────────────────────────

// BeginDrag starts a drag gesture at pt. The dragged set is the selection
// when it is non-empty, otherwise the front-most instance under the pointer.
// Nothing happens when the pointer is not over an instance.
func (c *Controller) BeginDrag(view geometry.View, pt geometry.Point) bool {
	hit, ok := c.InstanceAt(view, pt)
	if !ok {
		c.drag = nil
		return false
	}
	ids := c.Selection()
	if len(ids) == 0 {
		ids = []model.InstanceID{hit.ID}
	}
	c.drag = &dragState{view: view, ids: ids, last: pt}
	return true
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool { return c.drag != nil }

// DragTo moves the dragged set by the pointer delta since the previous
// frame. A rejected frame is dropped silently and the next frame measures
// from the new pointer position.
func (c *Controller) DragTo(pt geometry.Point) bool {
	if c.drag == nil {
		return false
	}
	d := c.drag
	moved := c.MoveBy(d.view, d.ids, pt.X-d.last.X, pt.Y-d.last.Y)
	d.last = pt
	d.moved = d.moved || moved
	return moved
}

// EndDrag finishes the gesture and reports whether anything moved during it.
func (c *Controller) EndDrag() bool {
	if c.drag == nil {
		return false
	}
	moved := c.drag.moved
	c.drag = nil
	return moved
}

// MoveBy shifts a group of instances by a pointer delta in view. In the top
// view the group moves in x and y and settles at one common height: the
// highest resting height of any member. The side view moves x and z and the
// front view y and z, holding the third axis. Members are clamped to the
// container individually; the whole move is rejected if any member would
// collide or lack headroom.
func (c *Controller) MoveBy(view geometry.View, ids []model.InstanceID, dxPx, dyPx float64) bool {
	if len(ids) == 0 {
		return false
	}
	du, dv := c.views.For(view).DeltaToModel(dxPx, dyPx)
	ct := c.layout.Container()

	moves := make([]engine.Move, 0, len(ids))
	insts := make([]model.CargoInstance, 0, len(ids))
	for _, id := range ids {
		inst, ok := c.layout.Instance(id)
		if !ok {
			return false
		}
		m := engine.Move{ID: id, X: inst.X, Y: inst.Y, Z: inst.Z}
		switch view {
		case geometry.Side:
			m.X = model.Clamp(inst.X+du, inst.Length, ct.Length)
			m.Z = model.Clamp(inst.Z+dv, inst.Height, ct.Height)
		case geometry.Front:
			m.Y = model.Clamp(inst.Y+du, inst.Width, ct.Width)
			m.Z = model.Clamp(inst.Z+dv, inst.Height, ct.Height)
		default:
			m.X = model.Clamp(inst.X+du, inst.Length, ct.Length)
			m.Y = model.Clamp(inst.Y+dv, inst.Width, ct.Width)
		}
		moves = append(moves, m)
		insts = append(insts, inst)
	}

	if view == geometry.Top {
		var z float64
		for i, m := range moves {
			z = max(z, c.layout.RestingZ(m.X, m.Y, insts[i].Length, insts[i].Width, ids...))
		}
		for i := range moves {
			moves[i].Z = z
		}
	}

	changed := false
	for i, m := range moves {
		if m.X != insts[i].X || m.Y != insts[i].Y || m.Z != insts[i].Z {
			changed = true
			break
		}
	}
	if !changed {
		return false
	}
	return c.layout.MoveGroup(moves) == nil
}

// ─── Rotate / remove ───────────────────────────────────────

// RotateSelected rotates the single selected instance. It does nothing and
// returns false unless exactly one instance is selected.
func (c *Controller) RotateSelected() (bool, error) {
	if len(c.selection) != 1 {
		return false, nil
	}
	if err := c.layout.Rotate(c.selection[0]); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteSelected removes every selected instance and clears the selection.
func (c *Controller) DeleteSelected() []model.InstanceID {
	var removed []model.InstanceID
	for _, id := range c.selection {
		if err := c.layout.Remove(id); err == nil {
			removed = append(removed, id)
		}
	}
	c.selection = nil
	return removed
}

// RemoveAt removes the front-most instance under a canvas point.
func (c *Controller) RemoveAt(view geometry.View, pt geometry.Point) (model.InstanceID, bool) {
	inst, ok := c.InstanceAt(view, pt)
	if !ok {
		return 0, false
	}
	if err := c.layout.Remove(inst.ID); err != nil {
		return 0, false
	}
	c.Prune()
	return inst.ID, true
}
