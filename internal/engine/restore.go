package engine

import (
	"fmt"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// FromPlan rebuilds a layout from a snapshot, re-checking every invariant.
func FromPlan(plan model.Plan, opts ...Option) (*Layout, error) {
	l := New(plan.Container, opts...)
	if err := l.Restore(plan); err != nil {
		return nil, err
	}
	return l, nil
}

// Restore replaces the layout's contents with a snapshot. The snapshot is
// validated first: container extents, type records, instance containment and
// non-overlap, and placed counts against quantities. Placed counts are
// recomputed from the instances. Id counters only move forward so ids handed
// out before the restore are never reused.
func (l *Layout) Restore(plan model.Plan) error {
	c, err := model.NewContainer(plan.Container.Label, plan.Container.Length, plan.Container.Width, plan.Container.Height)
	if err != nil {
		return err
	}

	types := make([]model.CargoType, 0, len(plan.Types))
	typePos := make(map[model.TypeID]int, len(plan.Types))
	nextType := l.nextType
	for _, t := range plan.Types {
		if t.ID <= 0 {
			return &model.ValidationError{Field: "type", Message: fmt.Sprintf("invalid id %d", t.ID)}
		}
		if _, dup := typePos[t.ID]; dup {
			return &model.ValidationError{Field: "type", Message: fmt.Sprintf("duplicate id %d", t.ID)}
		}
		spec, err := model.ValidateCargoSpec(t.Spec(), c)
		if err != nil {
			return fmt.Errorf("cargo type %d: %w", t.ID, err)
		}
		t.Name = spec.Name
		t.Placed = 0
		typePos[t.ID] = len(types)
		types = append(types, t)
		nextType = max(nextType, t.ID+1)
	}

	instances := make([]model.CargoInstance, 0, len(plan.Instances))
	seen := make(map[model.InstanceID]bool, len(plan.Instances))
	nextInstance := l.nextInstance
	for _, inst := range plan.Instances {
		if inst.ID == 0 || seen[inst.ID] {
			return &model.ValidationError{Field: "instance", Message: fmt.Sprintf("invalid or duplicate id %d", inst.ID)}
		}
		pos, ok := typePos[inst.TypeID]
		if !ok {
			return fmt.Errorf("%w: cargo type %d for instance %d", model.ErrNotFound, inst.TypeID, inst.ID)
		}
		t := &types[pos]
		if !matchesType(inst.Box, *t) {
			return &model.ValidationError{
				Field:   "instance",
				Message: fmt.Sprintf("instance %d dimensions do not match cargo type %d", inst.ID, t.ID),
			}
		}
		if !c.Contains(inst.Box) {
			return fmt.Errorf("%w: instance %d", model.ErrOutOfBounds, inst.ID)
		}
		for _, other := range instances {
			if inst.Intersects(other.Box) {
				return fmt.Errorf("%w: instances %d and %d overlap", model.ErrCollisionBlocked, inst.ID, other.ID)
			}
		}
		t.Placed++
		if t.Placed > t.Qty {
			return &model.ValidationError{
				Field:   "qty",
				Message: fmt.Sprintf("cargo type %d has more placed boxes than requested", t.ID),
			}
		}
		seen[inst.ID] = true
		instances = append(instances, inst)
		nextInstance = max(nextInstance, inst.ID+1)
	}

	l.container = c
	l.types = types
	l.instances = instances
	l.nextType = nextType
	l.nextInstance = nextInstance
	return nil
}
