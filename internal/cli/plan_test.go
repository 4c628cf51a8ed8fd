package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPlan_ManifestWithOutputs(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "load.toml", `
name = "Crates to Rotterdam"
container = "ISO 20ft"

[[cargo]]
name = "Crate"
qty = 4
length = 2000
width = 1000
height = 1000
weight = 250
`)
	outputs := map[string]string{
		"--pdf":      filepath.Join(dir, "plan.pdf"),
		"--labels":   filepath.Join(dir, "labels.pdf"),
		"--xlsx":     filepath.Join(dir, "cargo.xlsx"),
		"--dxf":      filepath.Join(dir, "plan.dxf"),
		"--save":     filepath.Join(dir, "plan.loadplan.json"),
		"--manifest": filepath.Join(dir, "out.toml"),
	}
	args := []string{"plan", manifest}
	for flag, path := range outputs {
		args = append(args, flag, path)
	}

	out, err := runCLI(t, nil, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Crates to Rotterdam")
	assert.Contains(t, out, "all 4 boxes placed")

	for flag, path := range outputs {
		info, err := os.Stat(path)
		require.NoError(t, err, flag)
		assert.Positive(t, info.Size(), flag)
	}

	saved, err := project.LoadProject(outputs["--save"])
	require.NoError(t, err)
	assert.Equal(t, "Crates to Rotterdam", saved.Name)
	assert.Equal(t, "ISO 20ft", saved.Plan.Container.Label)
	assert.Len(t, saved.Plan.Instances, 4)
}

func TestPlan_StrictFailsWhenCargoRemains(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "load.toml", `
container = "ISO 20ft"

[[cargo]]
name = "Crate"
qty = 20
length = 2000
width = 1000
height = 1000
weight = 250
`)

	out, err := runCLI(t, nil, "plan", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "12 of 20 boxes do not fit")

	_, err = runCLI(t, nil, "plan", "--strict", manifest)
	assert.True(t, errors.Is(err, errUnplaced), "got %v", err)
}

func TestPlan_CSVWithContainerFlag(t *testing.T) {
	dir := t.TempDir()
	table := writeFile(t, dir, "cargo.csv", "Name,Qty,Length,Width,Height,Weight\nDrum,6,600,600,900,200\nBad*,1,1,1,1,1\n")
	save := filepath.Join(dir, "p.json")

	out, err := runCLI(t, nil, "plan", table, "--container", "ISO 40ft", "--gap", "0", "--save", save)
	require.NoError(t, err)
	assert.Contains(t, out, "Line 3")

	p, err := project.LoadProject(save)
	require.NoError(t, err)
	assert.Equal(t, "cargo", p.Name)
	assert.Equal(t, "ISO 40ft", p.Plan.Container.Label)
	assert.Equal(t, 0.0, p.Settings.Gap)
	require.Len(t, p.Plan.Instances, 6)
	assert.Equal(t, 600.0, p.Plan.Instances[1].Y)
}

func TestPlan_ProjectInputPlacesRemainder(t *testing.T) {
	dir := t.TempDir()
	p := model.NewProject()
	p.Name = "Half done"
	p.Plan.Types = []model.CargoType{
		{ID: 1, Name: "Crate", Qty: 3, Length: 2000, Width: 1000, Height: 1000, Weight: 250},
	}
	p.Plan.Instances = []model.CargoInstance{
		{ID: 1, TypeID: 1, Name: "Crate", Weight: 250, Box: model.Box{X: 5000, Length: 2000, Width: 1000, Height: 1000}},
	}
	in := filepath.Join(dir, "half.json")
	require.NoError(t, project.SaveProject(in, p))
	save := filepath.Join(dir, "full.json")

	_, err := runCLI(t, nil, "plan", in, "--save", save)
	require.NoError(t, err)

	loaded, err := project.LoadProject(save)
	require.NoError(t, err)
	assert.Equal(t, "Half done", loaded.Name)
	assert.Len(t, loaded.Plan.Instances, 3)
	assert.Equal(t, 3, loaded.Plan.Types[0].Placed)
}

func TestPlan_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, nil, "plan", filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	empty := writeFile(t, dir, "empty.csv", "Name,Qty,Length,Width,Height,Weight\n")
	_, err = runCLI(t, nil, "plan", empty)
	assert.Error(t, err)

	table := writeFile(t, dir, "cargo.csv", "Drum,1,600,600,900,200\n")
	_, err = runCLI(t, nil, "plan", table, "--container", "Moon base")
	assert.True(t, errors.Is(err, model.ErrNotFound), "got %v", err)

	_, err = runCLI(t, nil, "plan")
	assert.Error(t, err)
}
