package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/LoadPlan/internal/model"
)

func loadedProject() model.Project {
	p := model.NewProject()
	p.Name = "Shipment"
	p.Plan.Types = []model.CargoType{
		{ID: 1, Name: "Crate", Qty: 4, Length: 2000, Width: 1000, Height: 1000, Weight: 250, Placed: 2},
	}
	p.Plan.Instances = []model.CargoInstance{
		{ID: 1, TypeID: 1, Name: "Crate", Weight: 250, Box: model.Box{Length: 2000, Width: 1000, Height: 1000}},
		{ID: 2, TypeID: 1, Name: "Crate", Weight: 250, Box: model.Box{Y: 1010, Length: 2000, Width: 1000, Height: 1000}},
	}
	return p
}

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipment"+FileExtension)
	p := loadedProject()

	require.NoError(t, SaveProject(path, p))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, p.ID, loaded.ID)
	assert.Equal(t, "Shipment", loaded.Name)
	assert.Equal(t, p.Settings, loaded.Settings)
	assert.Equal(t, p.Plan.Instances, loaded.Plan.Instances)
	require.Len(t, loaded.Plan.Types, 1)
	assert.Equal(t, 2, loaded.Plan.Types[0].Placed)
}

func TestLoadProject_RecomputesPlacedCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	p := loadedProject()
	p.Plan.Types[0].Placed = 0
	require.NoError(t, SaveProject(path, p))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Plan.Types[0].Placed)
}

func TestLoadProject_RejectsOverlap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	p := loadedProject()
	p.Plan.Instances[1].Y = 500
	require.NoError(t, SaveProject(path, p))

	_, err := LoadProject(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrCollisionBlocked) || errors.Is(err, model.ErrValidation), "got %v", err)
}

func TestLoadProject_RejectsOutOfBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	p := loadedProject()
	p.Plan.Instances[1].X = p.Plan.Container.Length - 100
	require.NoError(t, SaveProject(path, p))

	_, err := LoadProject(path)
	assert.Error(t, err)
}

func TestLoadProject_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	require.NoError(t, SaveProject(path, model.NewProject()))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Plan.Types)
	assert.NotNil(t, loaded.Plan.Instances)
}

func TestLoadProject_BadFiles(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"garbage.json":     "not json",
		"noversion.json":   `{"project":{"name":"x"}}`,
		"newer.json":       `{"version":99,"project":{"name":"x"}}`,
		"nocontainer.json": `{"version":1,"project":{"name":"x","plan":{}}}`,
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := LoadProject(path)
		assert.Error(t, err, name)
	}

	_, err := LoadProject(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
