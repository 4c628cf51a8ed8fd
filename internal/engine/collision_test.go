package engine

import (
	"testing"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollides_StrictOverlap(t *testing.T) {
	l, id := newTestLayout(t, crateSpec(1))
	placed, err := l.PlaceAt(id, model.Box{Length: 2000, Width: 1000, Height: 1000}, "Crate", 250)
	require.NoError(t, err)

	assert.False(t, l.Collides(model.Box{X: 2000, Length: 100, Width: 100, Height: 100}), "face contact")
	assert.False(t, l.Collides(model.Box{Z: 1000, Length: 100, Width: 100, Height: 100}), "resting on top")
	assert.True(t, l.Collides(model.Box{X: 1999, Length: 100, Width: 100, Height: 100}))
	assert.False(t, l.Collides(model.Box{X: 10, Length: 100, Width: 100, Height: 100}, placed), "excluded")
}

func TestRestingZ(t *testing.T) {
	l := New(model.DefaultContainer())
	tall, err := l.AddType(model.CargoSpec{Name: "Tall", Qty: 1, Length: 1000, Width: 1000, Height: 2000, Weight: 1})
	require.NoError(t, err)
	low, err := l.AddType(model.CargoSpec{Name: "Low", Qty: 1, Length: 1000, Width: 1000, Height: 500, Weight: 1})
	require.NoError(t, err)

	tallID, err := l.PlaceAt(tall, model.Box{Length: 1000, Width: 1000, Height: 2000}, "Tall", 1)
	require.NoError(t, err)
	_, err = l.PlaceAt(low, model.Box{X: 1000, Length: 1000, Width: 1000, Height: 500}, "Low", 1)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, l.RestingZ(500, 0, 1000, 1000), "highest support wins")
	assert.Equal(t, 500.0, l.RestingZ(1200, 0, 500, 500))
	assert.Equal(t, 0.0, l.RestingZ(5000, 0, 500, 500), "floor")
	assert.Equal(t, 0.0, l.RestingZ(2000, 0, 500, 500), "edge contact is not support")
	assert.Equal(t, 500.0, l.RestingZ(500, 0, 1000, 1000, tallID), "excluded support is ignored")
}

func TestRestingZ_IgnoresHeadroom(t *testing.T) {
	c := model.Container{Length: 1000, Width: 1000, Height: 1000}
	l := New(c)
	id, err := l.AddType(model.CargoSpec{Name: "Block", Qty: 1, Length: 1000, Width: 1000, Height: 900, Weight: 1})
	require.NoError(t, err)
	_, err = l.PlaceAt(id, model.Box{Length: 1000, Width: 1000, Height: 900}, "Block", 1)
	require.NoError(t, err)

	assert.Equal(t, 900.0, l.RestingZ(0, 0, 1000, 1000))
}
