package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/geometry"
	"github.com/piwi3910/LoadPlan/internal/ui/widgets"
)

var viewCaptions = map[geometry.View]string{
	geometry.Top:   "Top (length x width)",
	geometry.Side:  "Side (length x height)",
	geometry.Front: "Front (width x height)",
}

// buildViewsPanel lays out top above side on the left and front on the right.
func (a *App) buildViewsPanel() fyne.CanvasObject {
	views := a.sess.Views()
	for _, v := range geometry.Views {
		a.views[v] = a.newViewCanvas(views.For(v))
	}

	card := func(v geometry.View) fyne.CanvasObject {
		return widget.NewCard("", viewCaptions[v], a.views[v])
	}

	left := container.NewVBox(card(geometry.Top), card(geometry.Side))
	return container.NewScroll(container.NewHBox(left, container.NewVBox(card(geometry.Front))))
}

// newViewCanvas wires a canvas to the gesture of its view. Gestures are
// looked up on every event since they are replaced with the session.
func (a *App) newViewCanvas(proj geometry.Projection) *widgets.ViewCanvas {
	v := proj.View
	vc := widgets.NewViewCanvas(proj)

	vc.OnPressed = func(pt geometry.Point, shift bool) {
		a.track(v, pt)
		a.gestures[v].press(pt, shift)
		a.showBand(vc, a.gestures[v])
	}
	vc.OnDragged = func(pt geometry.Point) {
		a.track(v, pt)
		if a.gestures[v].move(pt) {
			a.showBand(vc, a.gestures[v])
		}
	}
	vc.OnReleased = func(pt geometry.Point) {
		a.gestures[v].release(pt)
		vc.ClearBand()
	}
	vc.OnDoubleTapped = func(pt geometry.Point) {
		if a.gestures[v].removeAt(pt) {
			a.flash("Box removed")
		}
	}
	vc.OnHover = func(pt geometry.Point) {
		a.track(v, pt)
		if info, ok := a.sess.InfoAt(v, pt); ok {
			a.flash("%s", info)
		} else {
			a.flash("")
		}
	}
	vc.OnHoverOut = func() { a.flash("") }
	return vc
}

// track remembers the pointer position used for paste and keyboard nudges.
func (a *App) track(v geometry.View, pt geometry.Point) {
	a.lastView, a.lastPoint = v, pt
}

func (a *App) showBand(vc *widgets.ViewCanvas, g *gesture) {
	if r, ok := g.band(); ok {
		vc.SetBand(r)
	}
}
