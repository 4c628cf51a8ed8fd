package engine

import (
	"fmt"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// BatchResult reports the outcome of a batch placement.
type BatchResult struct {
	Placed    []model.InstanceID
	Remaining int // boxes of the type still unplaced
}

// PlaceBatch fills the remaining quantity of a type with a greedy shelf scan
// from the origin: rows run along y, rows advance along x and full floors
// stack upward in layers. Cells that overlap existing boxes are skipped. The
// scan stops when the quantity is reached or a layer would exceed the
// container height; running out of room is not an error.
func (l *Layout) PlaceBatch(id model.TypeID) (BatchResult, error) {
	idx := l.typeIndex(id)
	if idx < 0 {
		return BatchResult{}, fmt.Errorf("%w: cargo type %d", model.ErrNotFound, id)
	}
	ct := l.types[idx]
	c := l.container
	gap := l.gap

	var res BatchResult
	left := ct.Left()
	var x, y, z float64
	for len(res.Placed) < left {
		if y+ct.Width > c.Width {
			y = 0
			x += ct.Length + gap
			continue
		}
		if x+ct.Length > c.Length {
			x, y = 0, 0
			z += ct.Height + gap
			continue
		}
		if z+ct.Height > c.Height {
			break
		}

		box := model.Box{X: x, Y: y, Z: z, Length: ct.Length, Width: ct.Width, Height: ct.Height}
		if !l.Collides(box) {
			res.Placed = append(res.Placed, l.register(idx, box, ct.Name, ct.Weight))
		}
		y += ct.Width + gap
	}
	res.Remaining = l.types[idx].Left()
	return res, nil
}
