// Package session is the command surface of one loading plan. It owns the
// layout, the interaction controller and the undo history, logs every
// command and notifies listeners after each committed change. The desktop UI
// and the CLI talk only to a Session.
package session

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/LoadPlan/internal/engine"
	"github.com/piwi3910/LoadPlan/internal/geometry"
	"github.com/piwi3910/LoadPlan/internal/interact"
	"github.com/piwi3910/LoadPlan/internal/model"
)

// Listener is called with a fresh snapshot after every committed change.
type Listener func(model.Plan)

// Session is not safe for concurrent use; the UI drives it from its event
// thread.
type Session struct {
	id       string
	name     string
	settings model.Settings

	layout  *engine.Layout
	ctrl    *interact.Controller
	history *History
	logger  *log.Logger

	listeners []Listener
	dragStart *Snapshot
}

// New creates an empty session for a container. A nil logger uses
// log.Default().
func New(c model.Container, settings model.Settings, logger *log.Logger) *Session {
	p := model.NewProject()
	p.Plan.Container = c
	p.Settings = settings
	s, err := FromProject(p, logger)
	if err != nil {
		// An empty plan only fails on a bad container; fall back to the default.
		p.Plan.Container = model.DefaultContainer()
		if s, err = FromProject(p, logger); err != nil {
			panic(fmt.Sprintf("session: default container rejected: %v", err))
		}
	}
	return s
}

// FromProject restores a session from a saved project, re-checking every
// layout invariant.
func FromProject(p model.Project, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	layout, err := engine.FromPlan(p.Plan, engine.WithGap(p.Settings.Gap))
	if err != nil {
		return nil, fmt.Errorf("failed to restore plan: %w", err)
	}
	s := &Session{
		id:       p.ID,
		name:     p.Name,
		settings: p.Settings,
		layout:   layout,
		history:  NewHistory(),
		logger:   logger,
	}
	s.ctrl = interact.New(layout, geometry.NewSet(layout.Container(), p.Settings))
	return s, nil
}

// Project returns the session as a saveable project.
func (s *Session) Project() model.Project {
	return model.Project{
		ID:       s.id,
		Name:     s.name,
		Plan:     s.layout.Snapshot(),
		Settings: s.settings,
	}
}

func (s *Session) Name() string { return s.name }

func (s *Session) SetName(name string) { s.name = name }

func (s *Session) Settings() model.Settings { return s.settings }

// SetSettings changes placement and display settings. The projections are
// rebuilt so later pointer input uses the new scale.
func (s *Session) SetSettings(settings model.Settings) {
	s.settings = settings
	s.layout.SetGap(settings.Gap)
	s.ctrl.SetViews(geometry.NewSet(s.layout.Container(), settings))
	s.notify()
}

// Views returns the current projections.
func (s *Session) Views() geometry.Set { return s.ctrl.Views() }

// OnChange registers a listener for committed changes.
func (s *Session) OnChange(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a value copy of the current layout.
func (s *Session) Snapshot() model.Plan { return s.layout.Snapshot() }

// Status returns weight and volume totals for the current layout.
func (s *Session) Status() model.LoadStatus {
	return model.CalculateLoadStatus(s.layout.Snapshot(), s.settings)
}

// ─── Cargo types ───────────────────────────────────────────

// AddType registers a new cargo type.
func (s *Session) AddType(spec model.CargoSpec) (model.TypeID, error) {
	var id model.TypeID
	err := s.commit("Add cargo", func() error {
		var err error
		id, err = s.layout.AddType(spec)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("cargo type added", "id", id, "name", spec.Name, "qty", spec.Qty)
	return id, nil
}

// EditType replaces a cargo type's record.
func (s *Session) EditType(id model.TypeID, spec model.CargoSpec) error {
	err := s.commit("Edit cargo", func() error {
		return s.layout.EditType(id, spec)
	})
	if err == nil {
		s.logger.Debug("cargo type edited", "id", id, "name", spec.Name)
	}
	return err
}

// RemoveType deletes a cargo type and all of its placed boxes.
func (s *Session) RemoveType(id model.TypeID) error {
	var removed []model.InstanceID
	err := s.commit("Remove cargo", func() error {
		var err error
		removed, err = s.layout.RemoveType(id)
		return err
	})
	if err == nil {
		s.ctrl.Prune()
		s.logger.Debug("cargo type removed", "id", id, "instances", len(removed))
	}
	return err
}

// Types returns the cargo types in creation order.
func (s *Session) Types() []model.CargoType { return s.layout.Types() }

// ─── Placement ─────────────────────────────────────────────

// PlaceOne places a single box of a type at the centre of the floor plan.
func (s *Session) PlaceOne(id model.TypeID) (model.InstanceID, error) {
	var inst model.InstanceID
	err := s.commit("Place box", func() error {
		var err error
		inst, err = s.layout.PlaceSingle(id)
		return err
	})
	if err == nil {
		s.logger.Debug("box placed", "type", id, "instance", inst)
	}
	return inst, err
}

// PlaceBatch fills the remaining quantity of a type.
func (s *Session) PlaceBatch(id model.TypeID) (engine.BatchResult, error) {
	var res engine.BatchResult
	err := s.commit("Place batch", func() error {
		var err error
		res, err = s.layout.PlaceBatch(id)
		if err == nil && len(res.Placed) == 0 {
			return errNoChange
		}
		return err
	})
	if errors.Is(err, errNoChange) {
		err = nil
	}
	if err != nil {
		return res, err
	}
	s.logger.Debug("batch placed", "type", id, "placed", len(res.Placed), "remaining", res.Remaining)
	if res.Remaining > 0 {
		s.logger.Warn("not every box fits", "type", id, "remaining", res.Remaining)
	}
	return res, nil
}

// TypeBatch is the outcome of batch-placing one type.
type TypeBatch struct {
	Type   model.CargoType
	Result engine.BatchResult
}

// PlaceAll batch-places every cargo type in creation order as one undoable
// step.
func (s *Session) PlaceAll() ([]TypeBatch, error) {
	var out []TypeBatch
	err := s.commit("Place all", func() error {
		placed := 0
		for _, ct := range s.layout.Types() {
			res, err := s.layout.PlaceBatch(ct.ID)
			if err != nil {
				return err
			}
			placed += len(res.Placed)
			out = append(out, TypeBatch{Type: ct, Result: res})
		}
		if placed == 0 {
			return errNoChange
		}
		return nil
	})
	if errors.Is(err, errNoChange) {
		err = nil
	}
	for _, tb := range out {
		if tb.Result.Remaining > 0 {
			s.logger.Warn("not every box fits", "cargo", tb.Type.Name, "remaining", tb.Result.Remaining)
		}
	}
	return out, err
}

// RemoveInstance deletes one placed box.
func (s *Session) RemoveInstance(id model.InstanceID) error {
	err := s.commit("Remove box", func() error {
		return s.layout.Remove(id)
	})
	if err == nil {
		s.ctrl.Prune()
	}
	return err
}

// RemoveAt deletes the front-most box under a canvas point.
func (s *Session) RemoveAt(view geometry.View, pt geometry.Point) (model.InstanceID, bool) {
	var id model.InstanceID
	err := s.commit("Remove box", func() error {
		var ok bool
		id, ok = s.ctrl.RemoveAt(view, pt)
		if !ok {
			return errNoChange
		}
		return nil
	})
	return id, err == nil
}

// ClearAllInstances removes every placed box.
func (s *Session) ClearAllInstances() {
	err := s.commit("Clear", func() error {
		if s.layout.Len() == 0 {
			return errNoChange
		}
		s.layout.ClearInstances()
		return nil
	})
	if err == nil {
		s.ctrl.ClearSelection()
		s.logger.Debug("all boxes cleared")
	}
}

// SetContainer switches to a different container. It is only allowed while
// nothing is placed and every cargo type fits the new container.
func (s *Session) SetContainer(c model.Container) error {
	c, err := model.NewContainer(c.Label, c.Length, c.Width, c.Height)
	if err != nil {
		return err
	}
	if s.layout.Len() > 0 {
		return &model.ValidationError{Field: "container", Message: "clear placed boxes before changing the container"}
	}
	return s.commit("Change container", func() error {
		plan := s.layout.Snapshot()
		plan.Container = c
		if err := s.layout.Restore(plan); err != nil {
			return err
		}
		s.ctrl.SetViews(geometry.NewSet(c, s.settings))
		return nil
	})
}

// ─── Interaction ───────────────────────────────────────────

// Selection returns the selected instance ids.
func (s *Session) Selection() []model.InstanceID { return s.ctrl.Selection() }

func (s *Session) IsSelected(id model.InstanceID) bool { return s.ctrl.IsSelected(id) }

// Select selects the boxes touched by a rectangle in a view.
func (s *Session) Select(view geometry.View, a, b geometry.Point, extend bool) []model.InstanceID {
	sel := s.ctrl.SelectRect(view, a, b, extend)
	s.notify()
	return sel
}

// SetSelection replaces the selection.
func (s *Session) SetSelection(ids ...model.InstanceID) {
	s.ctrl.SetSelection(ids...)
	s.notify()
}

func (s *Session) ClearSelection() {
	s.ctrl.ClearSelection()
	s.notify()
}

// InfoAt returns the hover text for the box under a canvas point.
func (s *Session) InfoAt(view geometry.View, pt geometry.Point) (string, bool) {
	return s.ctrl.InfoAt(view, pt)
}

// InstanceAt returns the front-most box under a canvas point.
func (s *Session) InstanceAt(view geometry.View, pt geometry.Point) (model.CargoInstance, bool) {
	return s.ctrl.InstanceAt(view, pt)
}

// BeginDrag starts a drag gesture. The whole gesture becomes one undo step.
func (s *Session) BeginDrag(view geometry.View, pt geometry.Point) bool {
	if !s.ctrl.BeginDrag(view, pt) {
		return false
	}
	snap := MakeSnapshot(s.layout.Snapshot(), "Move")
	s.dragStart = &snap
	return true
}

// DragTo moves the dragged boxes to follow the pointer. Rejected frames are
// silent.
func (s *Session) DragTo(pt geometry.Point) bool {
	moved := s.ctrl.DragTo(pt)
	if moved {
		s.notify()
	}
	return moved
}

// EndDrag finishes a drag gesture.
func (s *Session) EndDrag() {
	moved := s.ctrl.EndDrag()
	if moved && s.dragStart != nil {
		s.history.Push(*s.dragStart)
		s.logger.Debug("boxes moved", "count", len(s.ctrl.Selection()))
	}
	s.dragStart = nil
}

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool { return s.ctrl.Dragging() }

// MoveSelected shifts the selection by a pointer delta in a view.
func (s *Session) MoveSelected(view geometry.View, dxPx, dyPx float64) bool {
	err := s.commit("Move", func() error {
		if !s.ctrl.MoveBy(view, s.ctrl.Selection(), dxPx, dyPx) {
			return errNoChange
		}
		return nil
	})
	return err == nil
}

// RotateSelected rotates the single selected box.
func (s *Session) RotateSelected() (bool, error) {
	var rotated bool
	err := s.commit("Rotate", func() error {
		var err error
		rotated, err = s.ctrl.RotateSelected()
		if err == nil && !rotated {
			return errNoChange
		}
		return err
	})
	if errors.Is(err, errNoChange) {
		return false, nil
	}
	return rotated, err
}

// DeleteSelected removes every selected box.
func (s *Session) DeleteSelected() []model.InstanceID {
	var removed []model.InstanceID
	_ = s.commit("Delete selection", func() error {
		removed = s.ctrl.DeleteSelected()
		if len(removed) == 0 {
			return errNoChange
		}
		return nil
	})
	return removed
}

// CopySelected copies the selection to the clipboard.
func (s *Session) CopySelected() int {
	n := s.ctrl.Copy()
	if n > 0 {
		s.logger.Debug("copied", "count", n)
	}
	return n
}

// ClipboardLen returns the number of copied boxes.
func (s *Session) ClipboardLen() int { return len(s.ctrl.Clipboard()) }

// PasteAt pastes the clipboard relative to a pointer position in a view.
func (s *Session) PasteAt(view geometry.View, pt geometry.Point) interact.PasteResult {
	var res interact.PasteResult
	_ = s.commit("Paste", func() error {
		res = s.ctrl.PasteAt(view, pt)
		if len(res.Placed) == 0 {
			return errNoChange
		}
		return nil
	})
	for _, f := range res.Failed {
		s.logger.Warn("paste skipped", "cargo", f.Entry.Name, "err", f.Err)
	}
	return res
}

// ─── Undo / redo ───────────────────────────────────────────

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Undo reverts the most recent committed change. The history is only
// moved once the snapshot has been restored.
func (s *Session) Undo() bool {
	snap, ok := s.history.PeekUndo()
	if !ok {
		return false
	}
	current := MakeSnapshot(s.layout.Snapshot(), snap.Label)
	if !s.restore(snap) {
		return false
	}
	s.history.Undo(current)
	s.notify()
	return true
}

// Redo re-applies the most recently undone change.
func (s *Session) Redo() bool {
	snap, ok := s.history.PeekRedo()
	if !ok {
		return false
	}
	current := MakeSnapshot(s.layout.Snapshot(), snap.Label)
	if !s.restore(snap) {
		return false
	}
	s.history.Redo(current)
	s.notify()
	return true
}

// restore loads snap into the layout. Listeners are notified by the caller
// once the history reflects the change.
func (s *Session) restore(snap Snapshot) bool {
	if err := s.layout.Restore(snap.Plan); err != nil {
		s.logger.Error("failed to restore snapshot", "label", snap.Label, "err", err)
		return false
	}
	s.ctrl.SetViews(geometry.NewSet(s.layout.Container(), s.settings))
	s.ctrl.Prune()
	s.logger.Debug("restored", "label", snap.Label)
	return true
}

// errNoChange aborts a commit without an error or history entry.
var errNoChange = errors.New("no change")

// commit runs fn and, when it succeeds, records the previous state in the
// history and notifies listeners. Layout operations leave the layout
// untouched on error, so a failed fn needs no rollback.
func (s *Session) commit(label string, fn func() error) error {
	before := MakeSnapshot(s.layout.Snapshot(), label)
	if err := fn(); err != nil {
		if !errors.Is(err, errNoChange) {
			s.logger.Warn(label+" rejected", "err", err)
		}
		return err
	}
	s.history.Push(before)
	s.notify()
	return nil
}

func (s *Session) notify() {
	if len(s.listeners) == 0 {
		return
	}
	plan := s.layout.Snapshot()
	for _, fn := range s.listeners {
		fn(plan)
	}
}
