// Package project persists projects, manifests, presets and application
// configuration on disk.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/LoadPlan/internal/engine"
	"github.com/piwi3910/LoadPlan/internal/model"
)

// FileVersion is the project file format version.
const FileVersion = 1

// FileExtension is the conventional extension for project files.
const FileExtension = ".loadplan.json"

// projectFile is the on-disk envelope of a project.
type projectFile struct {
	Version int           `json:"version"`
	SavedAt string        `json:"saved_at"`
	Project model.Project `json:"project"`
}

// SaveProject writes a project to path as JSON.
func SaveProject(path string, p model.Project) error {
	file := projectFile{
		Version: FileVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Project: p,
	}
	if err := writeJSON(path, file); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project from path. The plan is checked against every
// layout invariant before it is returned, so a file that was edited by hand
// into an overlapping or out-of-bounds state is rejected with the engine's
// error.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	var file projectFile
	if err := json.Unmarshal(data, &file); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if file.Version == 0 {
		return model.Project{}, fmt.Errorf("invalid project file: missing version field")
	}
	if file.Version > FileVersion {
		return model.Project{}, fmt.Errorf("project file version %d is newer than supported version %d", file.Version, FileVersion)
	}

	p := file.Project
	if p.Plan.Types == nil {
		p.Plan.Types = []model.CargoType{}
	}
	if p.Plan.Instances == nil {
		p.Plan.Instances = []model.CargoInstance{}
	}

	l, err := engine.FromPlan(p.Plan, engine.WithGap(p.Settings.Gap))
	if err != nil {
		return model.Project{}, fmt.Errorf("invalid project %q: %w", path, err)
	}
	// Placed counts are derived from the instances.
	p.Plan = l.Snapshot()
	return p, nil
}
