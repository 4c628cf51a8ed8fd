// Package geometry maps between 3D container space and the three 2D
// orthographic views: top (x,y), side (x,z) and front (y,z).
package geometry

import (
	"cmp"
	"math"
	"slices"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// View identifies one of the orthographic projections.
type View int

const (
	Top View = iota
	Side
	Front
)

// Views lists every view in display order.
var Views = []View{Top, Side, Front}

func (v View) String() string {
	switch v {
	case Top:
		return "Top"
	case Side:
		return "Side"
	case Front:
		return "Front"
	default:
		return "Unknown"
	}
}

// Axis is a model-space axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Point is a position on a canvas in pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned canvas rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the rectangle spanned by two corners in any order.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X: min(a.X, b.X),
		Y: min(a.Y, b.Y),
		W: math.Abs(a.X - b.X),
		H: math.Abs(a.Y - b.Y),
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Touches reports whether r and o overlap or share an edge.
func (r Rect) Touches(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W && r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Projection converts between model millimetres and canvas pixels for one
// view. The canvas origin is the top-left corner; Margin pixels surround the
// container outline.
type Projection struct {
	View      View
	Container model.Container
	Scale     float64 // pixels per mm
	Margin    float64 // pixels
}

// Axes returns the model axes shown horizontally and vertically.
func (p Projection) Axes() (u, v Axis) {
	switch p.View {
	case Side:
		return AxisX, AxisZ
	case Front:
		return AxisY, AxisZ
	default:
		return AxisX, AxisY
	}
}

// verticalExtent returns the container size along the view's vertical axis.
func (p Projection) verticalExtent() float64 {
	if p.View == Top {
		return p.Container.Width
	}
	return p.Container.Height
}

func (p Projection) horizontalExtent() float64 {
	if p.View == Front {
		return p.Container.Width
	}
	return p.Container.Length
}

// planeRect returns the box's lower corner and size on the view plane.
func (p Projection) planeRect(b model.Box) (u, v, du, dv float64) {
	switch p.View {
	case Side:
		return b.X, b.Z, b.Length, b.Height
	case Front:
		return b.Y, b.Z, b.Width, b.Height
	default:
		return b.X, b.Y, b.Length, b.Width
	}
}

// Project returns the on-screen rectangle of a box. The vertical plane axis
// is flipped so that y (top view) and z (side and front) grow upward.
func (p Projection) Project(b model.Box) Rect {
	u, v, du, dv := p.planeRect(b)
	return Rect{
		X: p.Margin + u*p.Scale,
		Y: p.Margin + (p.verticalExtent()-v-dv)*p.Scale,
		W: du * p.Scale,
		H: dv * p.Scale,
	}
}

// ContainerRect returns the on-screen outline of the container.
func (p Projection) ContainerRect() Rect {
	return Rect{
		X: p.Margin,
		Y: p.Margin,
		W: p.horizontalExtent() * p.Scale,
		H: p.verticalExtent() * p.Scale,
	}
}

// CanvasSize returns the pixel size needed to draw the view with margins.
func (p Projection) CanvasSize() (w, h float64) {
	r := p.ContainerRect()
	return r.W + 2*p.Margin, r.H + 2*p.Margin
}

// Unproject converts a canvas point into plane coordinates (mm) along the
// view's horizontal and vertical axes.
func (p Projection) Unproject(pt Point) (u, v float64) {
	u = (pt.X - p.Margin) / p.Scale
	v = p.verticalExtent() - (pt.Y-p.Margin)/p.Scale
	return u, v
}

// DeltaToModel converts a pointer movement in pixels into a plane movement
// in mm. Screen y grows downward, plane v grows upward.
func (p Projection) DeltaToModel(dx, dy float64) (du, dv float64) {
	return dx / p.Scale, -dy / p.Scale
}

// DrawOrder returns the instances sorted back to front for the view: the top
// view by ascending z, the side view by descending y and the front view by
// descending x. Ties keep placement order.
func (p Projection) DrawOrder(instances []model.CargoInstance) []model.CargoInstance {
	out := slices.Clone(instances)
	slices.SortStableFunc(out, func(a, b model.CargoInstance) int {
		switch p.View {
		case Side:
			return cmp.Compare(b.Y, a.Y)
		case Front:
			return cmp.Compare(b.X, a.X)
		default:
			return cmp.Compare(a.Z, b.Z)
		}
	})
	return out
}

// HitTest returns the front-most instance whose projection contains pt.
func (p Projection) HitTest(instances []model.CargoInstance, pt Point) (model.CargoInstance, bool) {
	ordered := p.DrawOrder(instances)
	for i := len(ordered) - 1; i >= 0; i-- {
		if p.Project(ordered[i].Box).Contains(pt) {
			return ordered[i], true
		}
	}
	return model.CargoInstance{}, false
}

// Within returns the ids of instances whose projection touches r.
func (p Projection) Within(instances []model.CargoInstance, r Rect) []model.InstanceID {
	var ids []model.InstanceID
	for _, inst := range instances {
		if p.Project(inst.Box).Touches(r) {
			ids = append(ids, inst.ID)
		}
	}
	return ids
}

// Set bundles the three projections of one container.
type Set struct {
	Top   Projection
	Side  Projection
	Front Projection
}

// NewSet builds the three projections from display settings. The front view
// is drawn at Scale * FrontScaleFactor since the container is narrow.
func NewSet(c model.Container, s model.Settings) Set {
	front := s.Scale
	if s.FrontScaleFactor > 0 {
		front = s.Scale * s.FrontScaleFactor
	}
	return Set{
		Top:   Projection{View: Top, Container: c, Scale: s.Scale, Margin: s.Margin},
		Side:  Projection{View: Side, Container: c, Scale: s.Scale, Margin: s.Margin},
		Front: Projection{View: Front, Container: c, Scale: front, Margin: s.Margin},
	}
}

// For returns the projection of the given view.
func (s Set) For(v View) Projection {
	switch v {
	case Side:
		return s.Side
	case Front:
		return s.Front
	default:
		return s.Top
	}
}
