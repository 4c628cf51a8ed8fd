package ui

import (
	"github.com/piwi3910/LoadPlan/internal/geometry"
	"github.com/piwi3910/LoadPlan/internal/session"
)

type pointerMode int

const (
	modeIdle pointerMode = iota
	modeDrag
	modeBand
)

// gesture turns raw pointer events from one view into session commands.
// Pressing on a box drags it (or the selection it belongs to); pressing on
// empty space, or anywhere with shift held, draws a selection rectangle.
type gesture struct {
	sess *session.Session
	view geometry.View

	mode    pointerMode
	anchor  geometry.Point
	current geometry.Point
	extend  bool
}

func newGesture(sess *session.Session, view geometry.View) *gesture {
	return &gesture{sess: sess, view: view}
}

func (g *gesture) press(pt geometry.Point, shift bool) {
	g.mode = modeIdle
	if !shift {
		if inst, ok := g.sess.InstanceAt(g.view, pt); ok {
			if !g.sess.IsSelected(inst.ID) {
				g.sess.SetSelection(inst.ID)
			}
			if g.sess.BeginDrag(g.view, pt) {
				g.mode = modeDrag
				return
			}
		}
	}
	g.mode = modeBand
	g.anchor, g.current = pt, pt
	g.extend = shift
}

// move reports whether the selection rectangle changed.
func (g *gesture) move(pt geometry.Point) bool {
	switch g.mode {
	case modeDrag:
		g.sess.DragTo(pt)
	case modeBand:
		g.current = pt
		return true
	}
	return false
}

// release finishes the gesture. Repeated calls are no-ops.
func (g *gesture) release(pt geometry.Point) {
	switch g.mode {
	case modeDrag:
		g.sess.DragTo(pt)
		g.sess.EndDrag()
	case modeBand:
		g.current = pt
		g.sess.Select(g.view, g.anchor, g.current, g.extend)
	}
	g.mode = modeIdle
}

// band returns the selection rectangle while one is being drawn.
func (g *gesture) band() (geometry.Rect, bool) {
	if g.mode != modeBand {
		return geometry.Rect{}, false
	}
	return geometry.RectFromPoints(g.anchor, g.current), true
}

func (g *gesture) removeAt(pt geometry.Point) bool {
	_, ok := g.sess.RemoveAt(g.view, pt)
	return ok
}
