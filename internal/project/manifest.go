package project

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// Manifest is a hand-written load description in TOML:
//
//	name = "Shipment 42"
//	container = "ISO 40ft"
//	gap = 20
//
//	[[cargo]]
//	preset = "Euro pallet"
//	qty = 10
//
//	[[cargo]]
//	name = "Crate"
//	qty = 4
//	length = 2000
//	width = 1000
//	height = 1000
//	weight = 250
//
// The container is either a preset name or an explicit [dimensions] table.
// Cargo entries either reference a catalog preset or spell out every field;
// explicit fields override the preset's values.
type Manifest struct {
	Name       string              `toml:"name"`
	Container  string              `toml:"container,omitempty"`
	Dimensions *ManifestDimensions `toml:"dimensions,omitempty"`
	Gap        *float64            `toml:"gap,omitempty"`
	Cargo      []ManifestCargo     `toml:"cargo"`
}

// ManifestDimensions describes a container that is not a preset.
type ManifestDimensions struct {
	Label  string  `toml:"label,omitempty"`
	Length float64 `toml:"length"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// ManifestCargo is one cargo entry of a manifest.
type ManifestCargo struct {
	Preset string  `toml:"preset,omitempty"`
	Name   string  `toml:"name,omitempty"`
	Qty    int     `toml:"qty"`
	Length float64 `toml:"length,omitempty"`
	Width  float64 `toml:"width,omitempty"`
	Height float64 `toml:"height,omitempty"`
	Weight float64 `toml:"weight,omitempty"`
}

// LoadManifest parses a TOML manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// SaveManifest writes a manifest as TOML.
func SaveManifest(path string, m Manifest) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ManifestFromPlan describes the cargo of a plan as a manifest with explicit
// dimensions. Placements are not part of a manifest.
func ManifestFromPlan(name string, plan model.Plan, settings model.Settings) Manifest {
	gap := settings.Gap
	c := plan.Container
	m := Manifest{
		Name:       name,
		Dimensions: &ManifestDimensions{Label: c.Label, Length: c.Length, Width: c.Width, Height: c.Height},
		Gap:        &gap,
		Cargo:      make([]ManifestCargo, 0, len(plan.Types)),
	}
	for _, t := range plan.Types {
		m.Cargo = append(m.Cargo, ManifestCargo{
			Name: t.Name, Qty: t.Qty, Length: t.Length, Width: t.Width, Height: t.Height, Weight: t.Weight,
		})
	}
	return m
}

// Resolve turns the manifest into a container and cargo records, looking up
// presets in inv. Records are not validated here; AddType does that against
// the resolved container.
func (m Manifest) Resolve(inv model.Inventory) (model.Container, []model.CargoSpec, error) {
	var c model.Container
	var err error
	switch {
	case m.Dimensions != nil && m.Container != "":
		return model.Container{}, nil, &model.ValidationError{Field: "container", Message: "set either a preset name or dimensions, not both"}
	case m.Dimensions != nil:
		d := m.Dimensions
		label := d.Label
		if label == "" {
			label = fmt.Sprintf("%.0f x %.0f x %.0f", d.Length, d.Width, d.Height)
		}
		c, err = model.NewContainer(label, d.Length, d.Width, d.Height)
	case m.Container != "":
		preset := inv.FindContainerByName(m.Container)
		if preset == nil {
			return model.Container{}, nil, fmt.Errorf("%w: container preset %q", model.ErrNotFound, m.Container)
		}
		c, err = preset.ToContainer()
	default:
		c = model.DefaultContainer()
	}
	if err != nil {
		return model.Container{}, nil, err
	}

	specs := make([]model.CargoSpec, 0, len(m.Cargo))
	for i, entry := range m.Cargo {
		spec := model.CargoSpec{Name: entry.Name, Qty: entry.Qty}
		if entry.Preset != "" {
			preset := inv.FindCargoByName(entry.Preset)
			if preset == nil {
				return model.Container{}, nil, fmt.Errorf("%w: cargo preset %q (entry %d)", model.ErrNotFound, entry.Preset, i+1)
			}
			spec = preset.ToSpec(entry.Qty)
			if entry.Name != "" {
				spec.Name = entry.Name
			}
		}
		if entry.Length > 0 {
			spec.Length = entry.Length
		}
		if entry.Width > 0 {
			spec.Width = entry.Width
		}
		if entry.Height > 0 {
			spec.Height = entry.Height
		}
		if entry.Weight > 0 {
			spec.Weight = entry.Weight
		}
		specs = append(specs, spec)
	}
	return c, specs, nil
}

// Settings returns the project settings for the manifest: defaults with the
// manifest's gap applied.
func (m Manifest) Settings(base model.Settings) model.Settings {
	if m.Gap != nil && *m.Gap >= 0 {
		base.Gap = *m.Gap
	}
	return base
}
