// Package engine holds the live cargo layout and the algorithms that keep it
// consistent: collision, gravity settling, single and batch placement,
// rotation and group moves.
package engine

import (
	"fmt"
	"slices"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// DefaultGap is the spacing between boxes in batch placement (mm).
const DefaultGap = 10.0

// Layout is the authoritative set of cargo types and placed instances for
// one container. Every exported method either commits fully or leaves the
// layout unchanged. A Layout is not safe for concurrent use.
type Layout struct {
	container model.Container
	gap       float64

	types     []model.CargoType
	instances []model.CargoInstance

	nextType     model.TypeID
	nextInstance model.InstanceID
}

// Option configures a Layout.
type Option func(*Layout)

// WithGap sets the batch placement gap.
func WithGap(gap float64) Option {
	return func(l *Layout) {
		if gap >= 0 {
			l.gap = gap
		}
	}
}

// New creates an empty layout for the given container.
func New(c model.Container, opts ...Option) *Layout {
	l := &Layout{
		container:    c,
		gap:          DefaultGap,
		nextType:     1,
		nextInstance: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Layout) Container() model.Container { return l.container }

func (l *Layout) Gap() float64 { return l.gap }

// SetGap changes the batch placement gap. Negative values are ignored.
func (l *Layout) SetGap(gap float64) {
	if gap >= 0 {
		l.gap = gap
	}
}

// AddType validates spec against the container and registers a new cargo
// type with no placed boxes.
func (l *Layout) AddType(spec model.CargoSpec) (model.TypeID, error) {
	spec, err := model.ValidateCargoSpec(spec, l.container)
	if err != nil {
		return 0, err
	}
	id := l.nextType
	l.nextType++
	l.types = append(l.types, model.CargoType{
		ID:     id,
		Name:   spec.Name,
		Qty:    spec.Qty,
		Length: spec.Length,
		Width:  spec.Width,
		Height: spec.Height,
		Weight: spec.Weight,
	})
	return id, nil
}

// EditType replaces a type's record. The quantity may not drop below the
// number of placed boxes and the dimensions may not change while any box of
// the type is placed. Placed instances keep their name and weight snapshots.
func (l *Layout) EditType(id model.TypeID, spec model.CargoSpec) error {
	idx := l.typeIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: cargo type %d", model.ErrNotFound, id)
	}
	spec, err := model.ValidateCargoSpec(spec, l.container)
	if err != nil {
		return err
	}

	ct := &l.types[idx]
	if spec.Qty < ct.Placed {
		return &model.ValidationError{
			Field:   "qty",
			Message: fmt.Sprintf("%d is below the %d boxes already placed", spec.Qty, ct.Placed),
		}
	}
	dimsChanged := spec.Length != ct.Length || spec.Width != ct.Width || spec.Height != ct.Height
	if dimsChanged && ct.Placed > 0 {
		return &model.ValidationError{
			Field:   "dimensions",
			Message: fmt.Sprintf("cannot change while %d boxes are placed", ct.Placed),
		}
	}

	ct.Name = spec.Name
	ct.Qty = spec.Qty
	ct.Length = spec.Length
	ct.Width = spec.Width
	ct.Height = spec.Height
	ct.Weight = spec.Weight
	return nil
}

// RemoveType deletes a cargo type together with all of its placed instances.
// It returns the ids of the removed instances.
func (l *Layout) RemoveType(id model.TypeID) ([]model.InstanceID, error) {
	idx := l.typeIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: cargo type %d", model.ErrNotFound, id)
	}

	var removed []model.InstanceID
	kept := l.instances[:0]
	for _, inst := range l.instances {
		if inst.TypeID == id {
			removed = append(removed, inst.ID)
			continue
		}
		kept = append(kept, inst)
	}
	l.instances = kept
	l.types = slices.Delete(l.types, idx, idx+1)
	return removed, nil
}

// Type returns the cargo type with the given id.
func (l *Layout) Type(id model.TypeID) (model.CargoType, bool) {
	idx := l.typeIndex(id)
	if idx < 0 {
		return model.CargoType{}, false
	}
	return l.types[idx], true
}

// Types returns a copy of the cargo types in creation order.
func (l *Layout) Types() []model.CargoType {
	return slices.Clone(l.types)
}

// Instance returns the placed instance with the given id.
func (l *Layout) Instance(id model.InstanceID) (model.CargoInstance, bool) {
	idx := l.instanceIndex(id)
	if idx < 0 {
		return model.CargoInstance{}, false
	}
	return l.instances[idx], true
}

// Instances returns a copy of the placed instances in placement order.
func (l *Layout) Instances() []model.CargoInstance {
	return slices.Clone(l.instances)
}

// Len returns the number of placed instances.
func (l *Layout) Len() int { return len(l.instances) }

// Snapshot returns a value copy of the whole layout.
func (l *Layout) Snapshot() model.Plan {
	types := l.Types()
	if types == nil {
		types = []model.CargoType{}
	}
	instances := l.Instances()
	if instances == nil {
		instances = []model.CargoInstance{}
	}
	return model.Plan{
		Container: l.container,
		Types:     types,
		Instances: instances,
	}
}

func (l *Layout) typeIndex(id model.TypeID) int {
	for i := range l.types {
		if l.types[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Layout) instanceIndex(id model.InstanceID) int {
	for i := range l.instances {
		if l.instances[i].ID == id {
			return i
		}
	}
	return -1
}

// register appends a new instance of the type at typeIdx and bumps its
// placed counter.
func (l *Layout) register(typeIdx int, box model.Box, name string, weight float64) model.InstanceID {
	ct := &l.types[typeIdx]
	id := l.nextInstance
	l.nextInstance++
	l.instances = append(l.instances, model.CargoInstance{
		ID:     id,
		TypeID: ct.ID,
		Name:   name,
		Weight: weight,
		Box:    box,
	})
	ct.Placed++
	return id
}
