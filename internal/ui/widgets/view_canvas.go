package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/geometry"
	"github.com/piwi3910/LoadPlan/internal/model"
)

// Type colors, cycled by type id.
var typeColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

var (
	containerFill   = color.NRGBA{R: 236, G: 239, B: 241, A: 255}
	containerStroke = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	boxStroke       = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	selectedStroke  = color.NRGBA{R: 213, G: 0, B: 0, A: 255}
	bandStroke      = color.NRGBA{R: 25, G: 118, B: 210, A: 255}
	bandFill        = color.NRGBA{R: 25, G: 118, B: 210, A: 40}
)

// TypeColor returns the fill color used for boxes of a cargo type.
func TypeColor(id model.TypeID) color.NRGBA {
	i := (int(id) - 1) % len(typeColors)
	if i < 0 {
		i += len(typeColors)
	}
	return typeColors[i]
}

// ViewCanvas draws one orthographic view of a plan and reports pointer
// gestures in canvas coordinates, which are the projection's pixel space.
type ViewCanvas struct {
	widget.BaseWidget

	proj     geometry.Projection
	plan     model.Plan
	selected map[model.InstanceID]bool
	band     *geometry.Rect
	lastDrag geometry.Point

	OnPressed      func(pt geometry.Point, shift bool)
	OnDragged      func(pt geometry.Point)
	OnReleased     func(pt geometry.Point)
	OnDoubleTapped func(pt geometry.Point)
	OnHover        func(pt geometry.Point)
	OnHoverOut     func()
}

func NewViewCanvas(proj geometry.Projection) *ViewCanvas {
	vc := &ViewCanvas{proj: proj, selected: map[model.InstanceID]bool{}}
	vc.ExtendBaseWidget(vc)
	return vc
}

func (vc *ViewCanvas) View() geometry.View { return vc.proj.View }

// Update replaces the drawn plan, projection and selection.
func (vc *ViewCanvas) Update(proj geometry.Projection, plan model.Plan, selection []model.InstanceID) {
	vc.proj = proj
	vc.plan = plan
	vc.selected = make(map[model.InstanceID]bool, len(selection))
	for _, id := range selection {
		vc.selected[id] = true
	}
	vc.Refresh()
}

// SetBand shows a rubber-band selection rectangle.
func (vc *ViewCanvas) SetBand(r geometry.Rect) {
	vc.band = &r
	vc.Refresh()
}

func (vc *ViewCanvas) ClearBand() {
	if vc.band == nil {
		return
	}
	vc.band = nil
	vc.Refresh()
}

func (vc *ViewCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newViewCanvasRenderer(vc)
}

// ─── Input ─────────────────────────────────────────────────

func toPoint(p fyne.Position) geometry.Point {
	return geometry.Point{X: float64(p.X), Y: float64(p.Y)}
}

func (vc *ViewCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || vc.OnPressed == nil {
		return
	}
	vc.lastDrag = toPoint(ev.Position)
	vc.OnPressed(vc.lastDrag, ev.Modifier&fyne.KeyModifierShift != 0)
}

func (vc *ViewCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || vc.OnReleased == nil {
		return
	}
	vc.OnReleased(toPoint(ev.Position))
}

func (vc *ViewCanvas) Dragged(ev *fyne.DragEvent) {
	vc.lastDrag = toPoint(ev.Position)
	if vc.OnDragged != nil {
		vc.OnDragged(vc.lastDrag)
	}
}

// DragEnd releases at the last dragged position; fyne reports no position here.
func (vc *ViewCanvas) DragEnd() {
	if vc.OnReleased != nil {
		vc.OnReleased(vc.lastDrag)
	}
}

func (vc *ViewCanvas) DoubleTapped(ev *fyne.PointEvent) {
	if vc.OnDoubleTapped != nil {
		vc.OnDoubleTapped(toPoint(ev.Position))
	}
}

func (vc *ViewCanvas) MouseIn(ev *desktop.MouseEvent) { vc.MouseMoved(ev) }

func (vc *ViewCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if vc.OnHover != nil {
		vc.OnHover(toPoint(ev.Position))
	}
}

func (vc *ViewCanvas) MouseOut() {
	if vc.OnHoverOut != nil {
		vc.OnHoverOut()
	}
}

// ─── Rendering ─────────────────────────────────────────────

type viewCanvasRenderer struct {
	vc      *ViewCanvas
	objects []fyne.CanvasObject
}

func newViewCanvasRenderer(vc *ViewCanvas) *viewCanvasRenderer {
	r := &viewCanvasRenderer{vc: vc}
	r.rebuild()
	return r
}

func rectObject(r geometry.Rect, fill, stroke color.Color, strokeWidth float32) *canvas.Rectangle {
	obj := canvas.NewRectangle(fill)
	obj.StrokeColor = stroke
	obj.StrokeWidth = strokeWidth
	obj.Resize(fyne.NewSize(float32(r.W), float32(r.H)))
	obj.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
	return obj
}

func (r *viewCanvasRenderer) rebuild() {
	r.objects = nil
	proj := r.vc.proj

	r.objects = append(r.objects, rectObject(proj.ContainerRect(), containerFill, containerStroke, 2))

	for _, inst := range proj.DrawOrder(r.vc.plan.Instances) {
		rect := proj.Project(inst.Box)
		stroke, width := color.Color(boxStroke), float32(1)
		if r.vc.selected[inst.ID] {
			stroke, width = selectedStroke, 2.5
		}
		r.objects = append(r.objects, rectObject(rect, TypeColor(inst.TypeID), stroke, width))

		// Label only if big enough
		if rect.W > 30 && rect.H > 14 {
			label := canvas.NewText(inst.Name, color.Black)
			label.TextSize = 9
			label.Move(fyne.NewPos(float32(rect.X)+2, float32(rect.Y)+1))
			r.objects = append(r.objects, label)
		}
	}

	if r.vc.band != nil {
		r.objects = append(r.objects, rectObject(*r.vc.band, bandFill, bandStroke, 1))
	}
}

func (r *viewCanvasRenderer) Layout(size fyne.Size)        {}
func (r *viewCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *viewCanvasRenderer) Destroy()                     {}
func (r *viewCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *viewCanvasRenderer) MinSize() fyne.Size {
	w, h := r.vc.proj.CanvasSize()
	return fyne.NewSize(float32(w), float32(h))
}
