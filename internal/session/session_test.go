package session

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/LoadPlan/internal/geometry"
	"github.com/piwi3910/LoadPlan/internal/model"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func crate(qty int) model.CargoSpec {
	return model.CargoSpec{Name: "Crate", Qty: qty, Length: 2000, Width: 1000, Height: 1000, Weight: 250}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New(model.DefaultContainer(), model.DefaultSettings(), quietLogger())
}

func TestSession_AddPlaceUndoRedo(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(4))
	require.NoError(t, err)

	res, err := s.PlaceBatch(id)
	require.NoError(t, err)
	require.Len(t, res.Placed, 4)
	assert.Len(t, s.Snapshot().Instances, 4)

	require.True(t, s.Undo())
	assert.Empty(t, s.Snapshot().Instances)
	assert.Len(t, s.Types(), 1)

	require.True(t, s.Undo())
	assert.Empty(t, s.Types())
	assert.False(t, s.Undo())

	require.True(t, s.Redo())
	require.True(t, s.Redo())
	assert.Len(t, s.Snapshot().Instances, 4)
	assert.False(t, s.CanRedo())
}

func TestSession_CapacityScenario(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(4))
	require.NoError(t, err)
	_, err = s.PlaceBatch(id)
	require.NoError(t, err)

	_, err = s.PlaceOne(id)
	assert.ErrorIs(t, err, model.ErrCapacityExceeded)
	assert.Len(t, s.Snapshot().Instances, 4)
}

func TestSession_FailedCommandAddsNoHistory(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddType(model.CargoSpec{Name: "bad/name", Qty: 1, Length: 1, Width: 1, Height: 1, Weight: 1})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.False(t, s.CanUndo())
}

func TestSession_ListenersSeeCommittedChanges(t *testing.T) {
	s := newTestSession(t)
	var plans []model.Plan
	s.OnChange(func(p model.Plan) { plans = append(plans, p) })

	id, err := s.AddType(crate(2))
	require.NoError(t, err)
	_, err = s.PlaceOne(id)
	require.NoError(t, err)
	_, err = s.AddType(model.CargoSpec{})
	require.Error(t, err)

	require.Len(t, plans, 2)
	assert.Len(t, plans[1].Instances, 1)
}

func TestSession_DragIsOneUndoStep(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(1))
	require.NoError(t, err)
	inst, err := s.PlaceOne(id)
	require.NoError(t, err)

	top := s.Views().Top
	placed := s.Snapshot().Instances[0]
	r := top.Project(placed.Box)
	start := geometry.Point{X: r.X + 1, Y: r.Y + 1}

	require.True(t, s.BeginDrag(geometry.Top, start))
	assert.True(t, s.DragTo(geometry.Point{X: start.X + 10, Y: start.Y}))
	assert.True(t, s.DragTo(geometry.Point{X: start.X + 20, Y: start.Y}))
	s.EndDrag()

	moved, _ := s.Snapshot().InstanceByID(inst)
	assert.Greater(t, moved.X, placed.X)

	require.True(t, s.Undo())
	back, _ := s.Snapshot().InstanceByID(inst)
	assert.Equal(t, placed.X, back.X, "one undo reverts the whole gesture")
}

func TestSession_RotateAndDeleteSelection(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(2))
	require.NoError(t, err)
	res, err := s.PlaceBatch(id)
	require.NoError(t, err)

	rotated, err := s.RotateSelected()
	assert.NoError(t, err)
	assert.False(t, rotated, "no selection")

	s.SetSelection(res.Placed[0])
	rotated, err = s.RotateSelected()
	assert.ErrorIs(t, err, model.ErrCollisionBlocked)
	assert.False(t, rotated)

	s.SetSelection(res.Placed...)
	removed := s.DeleteSelected()
	assert.Len(t, removed, 2)
	assert.Empty(t, s.Snapshot().Instances)
	assert.Empty(t, s.Selection())

	require.True(t, s.Undo())
	assert.Len(t, s.Snapshot().Instances, 2)
}

func TestSession_CopyPaste(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(4))
	require.NoError(t, err)
	inst, err := s.PlaceOne(id)
	require.NoError(t, err)

	assert.Zero(t, s.CopySelected())
	s.SetSelection(inst)
	assert.Equal(t, 1, s.CopySelected())
	assert.Equal(t, 1, s.ClipboardLen())

	top := s.Views().Top
	res := s.PasteAt(geometry.Top, geometry.Point{X: top.Margin + 10, Y: top.Margin + 10})
	require.Len(t, res.Placed, 1)
	assert.Len(t, s.Snapshot().Instances, 2)

	require.True(t, s.Undo())
	assert.Len(t, s.Snapshot().Instances, 1)
}

func TestSession_ClearAllInstances(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(3))
	require.NoError(t, err)
	_, err = s.PlaceBatch(id)
	require.NoError(t, err)

	s.ClearAllInstances()
	plan := s.Snapshot()
	assert.Empty(t, plan.Instances)
	assert.Equal(t, 0, plan.Types[0].Placed)
}

func TestSession_PlaceAll(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddType(crate(2))
	require.NoError(t, err)
	_, err = s.AddType(model.CargoSpec{Name: "Drum", Qty: 3, Length: 600, Width: 600, Height: 900, Weight: 200})
	require.NoError(t, err)

	batches, err := s.PlaceAll()
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0].Result.Placed, 2)
	assert.Len(t, batches[1].Result.Placed, 3)
	assert.Len(t, s.Snapshot().Instances, 5)

	require.True(t, s.Undo())
	assert.Empty(t, s.Snapshot().Instances, "place all is one undo step")
}

func TestSession_SetContainer(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(1))
	require.NoError(t, err)

	small := model.Container{Label: "Small", Length: 1000, Width: 1000, Height: 1000}
	assert.ErrorIs(t, s.SetContainer(small), model.ErrValidation, "crate does not fit")

	iso := model.Container{Label: "ISO 20ft", Length: 5898, Width: 2352, Height: 2393}
	require.NoError(t, s.SetContainer(iso))
	assert.Equal(t, iso, s.Snapshot().Container)
	assert.Equal(t, iso, s.Views().Top.Container)

	_, err = s.PlaceOne(id)
	require.NoError(t, err)
	assert.ErrorIs(t, s.SetContainer(model.DefaultContainer()), model.ErrValidation, "boxes are placed")
}

func TestSession_EditAndRemoveType(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(2))
	require.NoError(t, err)
	_, err = s.PlaceOne(id)
	require.NoError(t, err)

	spec := crate(0)
	assert.ErrorIs(t, s.EditType(id, spec), model.ErrValidation)

	spec = crate(5)
	spec.Name = "Crate XL"
	require.NoError(t, s.EditType(id, spec))
	assert.Equal(t, "Crate XL", s.Types()[0].Name)

	require.NoError(t, s.RemoveType(id))
	assert.Empty(t, s.Snapshot().Instances)
	assert.ErrorIs(t, s.RemoveType(id), model.ErrNotFound)
}

func TestSession_StatusAndProject(t *testing.T) {
	s := newTestSession(t)
	s.SetName("Shipment 12")
	id, err := s.AddType(crate(2))
	require.NoError(t, err)
	_, err = s.PlaceBatch(id)
	require.NoError(t, err)

	status := s.Status()
	assert.Equal(t, 500.0, status.TotalWeightKg)
	assert.Equal(t, 2, status.Instances)

	p := s.Project()
	assert.Equal(t, "Shipment 12", p.Name)

	restored, err := FromProject(p, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
}

func TestSession_FromProjectRejectsBrokenPlan(t *testing.T) {
	p := newTestSession(t).Project()
	p.Plan.Container.Length = -1
	_, err := FromProject(p, quietLogger())
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestSession_NewFallsBackToDefaultContainer(t *testing.T) {
	s := New(model.Container{Length: 0, Width: 100, Height: 100}, model.DefaultSettings(), quietLogger())
	assert.Equal(t, model.DefaultContainer(), s.Snapshot().Container)
}

func TestSession_FailedUndoKeepsHistory(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(1))
	require.NoError(t, err)
	_, err = s.PlaceOne(id)
	require.NoError(t, err)

	// Replace the latest undo entry with a plan that cannot be restored.
	broken := s.Snapshot()
	broken.Instances[0].X = -500
	s.history.undoStack[len(s.history.undoStack)-1] = MakeSnapshot(broken, "Place box")
	depth := len(s.history.undoStack)

	assert.False(t, s.Undo())
	assert.Len(t, s.history.undoStack, depth, "the snapshot stays on the undo stack")
	assert.False(t, s.CanRedo())
	assert.Len(t, s.Snapshot().Instances, 1, "layout is unchanged")
}

func TestSession_UndoNotifiesWithUpdatedHistory(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddType(crate(1))
	require.NoError(t, err)

	var canRedo bool
	s.OnChange(func(model.Plan) { canRedo = s.CanRedo() })
	require.True(t, s.Undo())
	assert.True(t, canRedo, "listeners see the redo entry")
}

func TestSession_LogsRejectedCommands(t *testing.T) {
	var buf bytes.Buffer
	s := New(model.DefaultContainer(), model.DefaultSettings(), log.New(&buf))
	_, err := s.PlaceOne(99)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Place box rejected")
}

func TestSession_SetSettingsRebuildsViews(t *testing.T) {
	s := newTestSession(t)
	settings := s.Settings()
	settings.Scale = 0.1
	settings.Gap = 0
	s.SetSettings(settings)

	assert.Equal(t, 0.1, s.Views().Top.Scale)
	assert.InDelta(t, 0.2, s.Views().Front.Scale, 1e-12)
}

func TestSession_RemoveAt(t *testing.T) {
	s := newTestSession(t)
	id, err := s.AddType(crate(1))
	require.NoError(t, err)
	_, err = s.PlaceOne(id)
	require.NoError(t, err)

	top := s.Views().Top
	r := top.Project(s.Snapshot().Instances[0].Box)
	_, ok := s.RemoveAt(geometry.Top, geometry.Point{X: r.X + 1, Y: r.Y + 1})
	assert.True(t, ok)
	assert.Empty(t, s.Snapshot().Instances)

	_, ok = s.RemoveAt(geometry.Top, geometry.Point{X: r.X + 1, Y: r.Y + 1})
	assert.False(t, ok)
}
