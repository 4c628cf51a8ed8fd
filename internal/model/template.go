package model

import (
	"time"

	"github.com/google/uuid"
)

// LoadTemplate is a reusable load configuration: a container, the cargo
// records to load into it and the settings. Placements are not kept.
type LoadTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Container   Container   `json:"container"`
	Cargo       []CargoSpec `json:"cargo"`
	Settings    Settings    `json:"settings"`
}

// NewLoadTemplate creates a template from the given plan. Types are kept as
// cargo records with their requested quantity; instances are dropped.
func NewLoadTemplate(name, description string, plan Plan, settings Settings) LoadTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	cargo := make([]CargoSpec, len(plan.Types))
	for i, t := range plan.Types {
		cargo[i] = t.Spec()
	}
	return LoadTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Container:   plan.Container,
		Cargo:       cargo,
		Settings:    settings,
	}
}

// ToProject creates a new, unplaced Project from this template. Types get
// fresh ids starting at 1.
func (t LoadTemplate) ToProject(projectName string) Project {
	p := NewProject()
	p.Name = projectName
	p.Settings = t.Settings
	p.Plan.Container = t.Container
	for i, spec := range t.Cargo {
		p.Plan.Types = append(p.Plan.Types, CargoType{
			ID:     TypeID(i + 1),
			Name:   spec.Name,
			Qty:    spec.Qty,
			Length: spec.Length,
			Width:  spec.Width,
			Height: spec.Height,
			Weight: spec.Weight,
		})
	}
	return p
}

// TemplateStore holds a collection of load templates.
type TemplateStore struct {
	Templates []LoadTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []LoadTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t LoadTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *LoadTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *LoadTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}
