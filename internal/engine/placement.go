package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// PlaceSingle places one box of the given type centred on the container
// floor plan and dropped onto whatever is beneath it.
func (l *Layout) PlaceSingle(id model.TypeID) (model.InstanceID, error) {
	idx := l.typeIndex(id)
	if idx < 0 {
		return 0, fmt.Errorf("%w: cargo type %d", model.ErrNotFound, id)
	}
	ct := l.types[idx]
	if ct.Placed >= ct.Qty {
		return 0, fmt.Errorf("%w: all %d boxes of %q are placed", model.ErrCapacityExceeded, ct.Qty, ct.Name)
	}

	x := math.Floor((l.container.Length - ct.Length) / 2)
	y := math.Floor((l.container.Width - ct.Width) / 2)
	box := model.Box{
		X:      x,
		Y:      y,
		Z:      l.RestingZ(x, y, ct.Length, ct.Width),
		Length: ct.Length,
		Width:  ct.Width,
		Height: ct.Height,
	}
	if box.MaxZ() > l.container.Height {
		return 0, fmt.Errorf("%w: no headroom for %q at the centre (top would be %.0f of %.0f)",
			model.ErrOutOfBounds, ct.Name, box.MaxZ(), l.container.Height)
	}
	if other, hit := l.firstCollision(box, nil); hit {
		return 0, fmt.Errorf("%w: %q overlaps instance %d", model.ErrPlacementBlocked, ct.Name, other)
	}
	return l.register(idx, box, ct.Name, ct.Weight), nil
}

// PlaceAt places one box of the given type at an explicit position. The box
// dimensions may be rotated relative to the type's nominal ones. Name and
// weight are the snapshots stored on the new instance.
func (l *Layout) PlaceAt(id model.TypeID, box model.Box, name string, weight float64) (model.InstanceID, error) {
	idx := l.typeIndex(id)
	if idx < 0 {
		return 0, fmt.Errorf("%w: cargo type %d", model.ErrNotFound, id)
	}
	ct := l.types[idx]
	if ct.Placed >= ct.Qty {
		return 0, fmt.Errorf("%w: all %d boxes of %q are placed", model.ErrCapacityExceeded, ct.Qty, ct.Name)
	}
	if !matchesType(box, ct) {
		return 0, &model.ValidationError{
			Field:   "dimensions",
			Message: fmt.Sprintf("%.0f x %.0f x %.0f is not a %q box", box.Length, box.Width, box.Height, ct.Name),
		}
	}
	if !l.container.Contains(box) {
		return 0, fmt.Errorf("%w: %q at (%.0f, %.0f, %.0f)", model.ErrOutOfBounds, name, box.X, box.Y, box.Z)
	}
	if other, hit := l.firstCollision(box, nil); hit {
		return 0, fmt.Errorf("%w: %q overlaps instance %d", model.ErrPlacementBlocked, name, other)
	}
	return l.register(idx, box, name, weight), nil
}

// matchesType reports whether box has the type's dimensions, either nominal
// or rotated about the vertical axis.
func matchesType(box model.Box, ct model.CargoType) bool {
	nominal := box.Length == ct.Length && box.Width == ct.Width
	rotated := box.Length == ct.Width && box.Width == ct.Length
	return (nominal || rotated) && box.Height == ct.Height
}

// Rotate swaps an instance's length and width in place, then lets it settle.
// The instance is left untouched when the rotated footprint leaves the
// container, hits another box at its current height or has no headroom
// after settling.
func (l *Layout) Rotate(id model.InstanceID) error {
	idx := l.instanceIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: instance %d", model.ErrNotFound, id)
	}
	inst := l.instances[idx]

	rotated := inst.Box
	rotated.Length, rotated.Width = inst.Width, inst.Length
	if rotated.MaxX() > l.container.Length || rotated.MaxY() > l.container.Width {
		return fmt.Errorf("%w: rotated %q would leave the container", model.ErrOutOfBounds, inst.Name)
	}
	if other, hit := l.firstCollision(rotated, []model.InstanceID{id}); hit {
		return fmt.Errorf("%w: rotated %q overlaps instance %d", model.ErrCollisionBlocked, inst.Name, other)
	}

	rotated.Z = l.RestingZ(rotated.X, rotated.Y, rotated.Length, rotated.Width, id)
	if rotated.MaxZ() > l.container.Height {
		return fmt.Errorf("%w: rotated %q has no headroom", model.ErrOutOfBounds, inst.Name)
	}

	l.instances[idx].Box = rotated
	return nil
}

// Remove deletes a placed instance and decrements its type's placed count.
func (l *Layout) Remove(id model.InstanceID) error {
	idx := l.instanceIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: instance %d", model.ErrNotFound, id)
	}
	typeID := l.instances[idx].TypeID
	l.instances = append(l.instances[:idx], l.instances[idx+1:]...)
	if t := l.typeIndex(typeID); t >= 0 && l.types[t].Placed > 0 {
		l.types[t].Placed--
	}
	return nil
}

// ClearInstances removes every placed instance. Types are kept with a
// placed count of zero.
func (l *Layout) ClearInstances() {
	l.instances = nil
	for i := range l.types {
		l.types[i].Placed = 0
	}
}

// Move is a requested new lower corner for one instance.
type Move struct {
	ID model.InstanceID
	X  float64
	Y  float64
	Z  float64
}

// MoveGroup repositions several instances at once. Every target is checked
// for containment and for overlap with boxes outside the group and with the
// other targets before anything is committed; a single failure rejects the
// whole move.
func (l *Layout) MoveGroup(moves []Move) error {
	if len(moves) == 0 {
		return nil
	}
	group := make([]model.InstanceID, len(moves))
	targets := make([]model.Box, len(moves))
	indexes := make([]int, len(moves))
	for i, m := range moves {
		idx := l.instanceIndex(m.ID)
		if idx < 0 {
			return fmt.Errorf("%w: instance %d", model.ErrNotFound, m.ID)
		}
		group[i] = m.ID
		indexes[i] = idx
		box := l.instances[idx].Box
		box.X, box.Y, box.Z = m.X, m.Y, m.Z
		targets[i] = box
	}

	for i, box := range targets {
		if !l.container.Contains(box) {
			return fmt.Errorf("%w: instance %d at (%.0f, %.0f, %.0f)", model.ErrOutOfBounds, group[i], box.X, box.Y, box.Z)
		}
		if other, hit := l.firstCollision(box, group); hit {
			return fmt.Errorf("%w: instance %d overlaps instance %d", model.ErrCollisionBlocked, group[i], other)
		}
		for j := i + 1; j < len(targets); j++ {
			if box.Intersects(targets[j]) {
				return fmt.Errorf("%w: instances %d and %d overlap", model.ErrCollisionBlocked, group[i], group[j])
			}
		}
	}

	for i, idx := range indexes {
		l.instances[idx].Box = targets[i]
	}
	return nil
}
