package engine

import (
	"testing"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPlan_RoundTrip(t *testing.T) {
	l, id := newTestLayout(t, crateSpec(5))
	_, err := l.PlaceAt(id, model.Box{X: 10000, Length: 1000, Width: 2000, Height: 1000}, "Crate", 250)
	require.NoError(t, err)
	_, err = l.PlaceBatch(id)
	require.NoError(t, err)

	restored, err := FromPlan(l.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, l.Snapshot(), restored.Snapshot())

	next, err := restored.AddType(crateSpec(1))
	require.NoError(t, err)
	assert.Equal(t, model.TypeID(2), next)
}

func TestFromPlan_RecomputesPlaced(t *testing.T) {
	l, id := newTestLayout(t, crateSpec(4))
	_, err := l.PlaceBatch(id)
	require.NoError(t, err)

	plan := l.Snapshot()
	plan.Types[0].Placed = 0
	restored, err := FromPlan(plan)
	require.NoError(t, err)
	ct, _ := restored.Type(id)
	assert.Equal(t, 4, ct.Placed)
}

func TestFromPlan_RejectsBrokenInvariants(t *testing.T) {
	base := func() model.Plan {
		l, id := newTestLayout(t, crateSpec(2))
		_, err := l.PlaceBatch(id)
		require.NoError(t, err)
		return l.Snapshot()
	}

	overlap := base()
	overlap.Instances[1].Y = 500
	_, err := FromPlan(overlap)
	assert.ErrorIs(t, err, model.ErrCollisionBlocked)

	outside := base()
	outside.Instances[0].X = 31000
	_, err = FromPlan(outside)
	assert.ErrorIs(t, err, model.ErrOutOfBounds)

	orphan := base()
	orphan.Instances[0].TypeID = 9
	_, err = FromPlan(orphan)
	assert.ErrorIs(t, err, model.ErrNotFound)

	overfull := base()
	overfull.Types[0].Qty = 1
	_, err = FromPlan(overfull)
	assert.ErrorIs(t, err, model.ErrValidation)

	wrongDims := base()
	wrongDims.Instances[0].Height = 10
	_, err = FromPlan(wrongDims)
	assert.ErrorIs(t, err, model.ErrValidation)

	dupType := base()
	dupType.Types = append(dupType.Types, dupType.Types[0])
	_, err = FromPlan(dupType)
	assert.ErrorIs(t, err, model.ErrValidation)

	badContainer := base()
	badContainer.Container.Height = 0
	_, err = FromPlan(badContainer)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestRestore_KeepsIDsMonotonic(t *testing.T) {
	l, id := newTestLayout(t, crateSpec(3))
	before := l.Snapshot()

	res, err := l.PlaceBatch(id)
	require.NoError(t, err)
	last := res.Placed[len(res.Placed)-1]

	require.NoError(t, l.Restore(before))
	assert.Zero(t, l.Len())

	next, err := l.PlaceSingle(id)
	require.NoError(t, err)
	assert.Greater(t, next, last)
}

func TestRestore_FailureLeavesLayoutUntouched(t *testing.T) {
	l, id := newTestLayout(t, crateSpec(2))
	_, err := l.PlaceBatch(id)
	require.NoError(t, err)
	want := l.Snapshot()

	bad := l.Snapshot()
	bad.Instances[0].X = -5
	require.Error(t, l.Restore(bad))
	assert.Equal(t, want, l.Snapshot())
}
