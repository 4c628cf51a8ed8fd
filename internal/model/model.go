package model

import (
	"fmt"

	"github.com/google/uuid"
)

// TypeID identifies a cargo type. IDs are assigned in increasing order
// starting at 1 and are never reused within a layout.
type TypeID int

// InstanceID identifies one placed cargo box. IDs are opaque, increase
// monotonically and are never reused, so removing one instance never
// invalidates references to another.
type InstanceID uint64

// Box is an axis-aligned box: the lower corner plus extents along x, y and z.
// All values are in millimetres.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Length float64 `json:"length"` // extent along x
	Width  float64 `json:"width"`  // extent along y
	Height float64 `json:"height"` // extent along z
}

func (b Box) MaxX() float64 { return b.X + b.Length }
func (b Box) MaxY() float64 { return b.Y + b.Width }
func (b Box) MaxZ() float64 { return b.Z + b.Height }

// Volume returns the box volume in cubic millimetres.
func (b Box) Volume() float64 {
	return b.Length * b.Width * b.Height
}

// FootprintIntersects reports whether the projections of b and o onto the
// floor overlap. Touching edges do not count as overlap.
func (b Box) FootprintIntersects(o Box) bool {
	return b.X < o.MaxX() && b.MaxX() > o.X &&
		b.Y < o.MaxY() && b.MaxY() > o.Y
}

// Intersects reports whether b and o share interior volume. The test is
// strict on every axis: boxes that only touch faces do not intersect.
func (b Box) Intersects(o Box) bool {
	return b.FootprintIntersects(o) &&
		b.Z < o.MaxZ() && b.MaxZ() > o.Z
}

// Container is the fixed cargo space. The origin is the lower corner;
// Length runs along x, Width along y and Height along z.
type Container struct {
	Label  string  `json:"label"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewContainer creates a container after checking that every extent is positive.
func NewContainer(label string, length, width, height float64) (Container, error) {
	if length <= 0 || width <= 0 || height <= 0 {
		return Container{}, &ValidationError{
			Field:   "container",
			Message: fmt.Sprintf("extents must be positive, got %.0f x %.0f x %.0f", length, width, height),
		}
	}
	return Container{Label: label, Length: length, Width: width, Height: height}, nil
}

// DefaultContainer returns the 32200 x 5000 x 5000 mm cargo space used when
// nothing else is configured.
func DefaultContainer() Container {
	return Container{Label: "Default 32.2m", Length: 32200, Width: 5000, Height: 5000}
}

// Volume returns the container volume in cubic millimetres.
func (c Container) Volume() float64 {
	return c.Length * c.Width * c.Height
}

// Contains reports whether b lies entirely inside the container.
func (c Container) Contains(b Box) bool {
	return b.X >= 0 && b.Y >= 0 && b.Z >= 0 &&
		b.MaxX() <= c.Length && b.MaxY() <= c.Width && b.MaxZ() <= c.Height
}

// Clamp returns v limited to [0, max(limit-size, 0)], the range of lower
// corner positions that keep an extent of size inside [0, limit].
func Clamp(v, size, limit float64) float64 {
	hi := limit - size
	if hi < 0 {
		hi = 0
	}
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

// CargoSpec is the input record for a cargo type as supplied by forms,
// spreadsheets and manifests.
type CargoSpec struct {
	Name   string  `json:"name" toml:"name"`
	Qty    int     `json:"qty" toml:"qty"`
	Length float64 `json:"length" toml:"length"` // mm
	Width  float64 `json:"width" toml:"width"`   // mm
	Height float64 `json:"height" toml:"height"` // mm
	Weight float64 `json:"weight" toml:"weight"` // kg per box
}

// CargoType is a kind of box the operator wants to load, with the requested
// quantity and the number of boxes currently placed.
type CargoType struct {
	ID     TypeID  `json:"id"`
	Name   string  `json:"name"`
	Qty    int     `json:"qty"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Placed int     `json:"placed"`
}

// Left returns how many boxes of this type still wait to be placed.
func (t CargoType) Left() int {
	left := t.Qty - t.Placed
	if left < 0 {
		return 0
	}
	return left
}

// Spec returns the input record this type was created from.
func (t CargoType) Spec() CargoSpec {
	return CargoSpec{Name: t.Name, Qty: t.Qty, Length: t.Length, Width: t.Width, Height: t.Height, Weight: t.Weight}
}

// CargoInstance is one placed box. Its dimensions may differ from the type's
// nominal ones after a rotation; Name and Weight are snapshots taken when the
// box was placed.
type CargoInstance struct {
	ID     InstanceID `json:"id"`
	TypeID TypeID     `json:"type_id"`
	Name   string     `json:"name"`
	Weight float64    `json:"weight"`
	Box
}

// Plan is a value snapshot of a layout: what renderers, exporters and the
// project file consume.
type Plan struct {
	Container Container       `json:"container"`
	Types     []CargoType     `json:"types"`
	Instances []CargoInstance `json:"instances"`
}

// TypeByID returns the cargo type with the given id.
func (p Plan) TypeByID(id TypeID) (CargoType, bool) {
	for _, t := range p.Types {
		if t.ID == id {
			return t, true
		}
	}
	return CargoType{}, false
}

// InstanceByID returns the instance with the given id.
func (p Plan) InstanceByID(id InstanceID) (CargoInstance, bool) {
	for _, inst := range p.Instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return CargoInstance{}, false
}

// InstancesOf returns the instances belonging to the given type, in placement order.
func (p Plan) InstancesOf(id TypeID) []CargoInstance {
	var out []CargoInstance
	for _, inst := range p.Instances {
		if inst.TypeID == id {
			out = append(out, inst)
		}
	}
	return out
}

// Settings holds placement and display parameters.
type Settings struct {
	Gap              float64 `json:"gap"`                // spacing between boxes in batch placement (mm)
	Scale            float64 `json:"scale"`              // pixels per mm for top and side views
	FrontScaleFactor float64 `json:"front_scale_factor"` // front view scale multiplier
	Margin           float64 `json:"margin"`             // canvas margin in pixels
	MaxWeightKg      float64 `json:"max_weight_kg"`
	MaxVolumeM3      float64 `json:"max_volume_m3"`
}

func DefaultSettings() Settings {
	return Settings{
		Gap:              10,
		Scale:            0.035,
		FrontScaleFactor: 2,
		Margin:           10,
		MaxWeightKg:      28000,
		MaxVolumeM3:      33.2,
	}
}

// Project ties a plan and its settings together for save/load.
type Project struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Plan     Plan     `json:"plan"`
	Settings Settings `json:"settings"`
}

func NewProject() Project {
	return Project{
		ID:   uuid.New().String()[:8],
		Name: "Untitled",
		Plan: Plan{
			Container: DefaultContainer(),
			Types:     []CargoType{},
			Instances: []CargoInstance{},
		},
		Settings: DefaultSettings(),
	}
}
