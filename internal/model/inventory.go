package model

import "github.com/google/uuid"

// ContainerPreset is a reusable container definition.
type ContainerPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewContainerPreset creates a new ContainerPreset with a generated ID.
func NewContainerPreset(name string, length, width, height float64) ContainerPreset {
	return ContainerPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Length: length,
		Width:  width,
		Height: height,
	}
}

// ToContainer converts the preset into a validated Container.
func (cp ContainerPreset) ToContainer() (Container, error) {
	return NewContainer(cp.Name, cp.Length, cp.Width, cp.Height)
}

// CargoPreset is a catalog entry for a box the operator loads often.
type CargoPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// NewCargoPreset creates a new CargoPreset with a generated ID.
func NewCargoPreset(name string, length, width, height, weight float64) CargoPreset {
	return CargoPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Length: length,
		Width:  width,
		Height: height,
		Weight: weight,
	}
}

// ToSpec converts the preset into a cargo record with the given quantity.
func (cp CargoPreset) ToSpec(qty int) CargoSpec {
	return CargoSpec{
		Name:   cp.Name,
		Qty:    qty,
		Length: cp.Length,
		Width:  cp.Width,
		Height: cp.Height,
		Weight: cp.Weight,
	}
}

// Inventory holds the user's saved container presets and cargo catalog.
type Inventory struct {
	Containers []ContainerPreset `json:"containers"`
	Cargo      []CargoPreset     `json:"cargo"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	def := DefaultContainer()
	return Inventory{
		Containers: []ContainerPreset{
			NewContainerPreset(def.Label, def.Length, def.Width, def.Height),
			NewContainerPreset("ISO 20ft", 5898, 2352, 2393),
			NewContainerPreset("ISO 40ft", 12032, 2352, 2393),
			NewContainerPreset("ISO 40ft High Cube", 12032, 2352, 2698),
		},
		Cargo: []CargoPreset{
			NewCargoPreset("Euro pallet", 1200, 800, 1000, 400),
			NewCargoPreset("Industrial pallet", 1200, 1000, 1200, 600),
			NewCargoPreset("Crate", 2000, 1000, 1000, 250),
			NewCargoPreset("Drum", 600, 600, 900, 200),
		},
	}
}

// FindContainerByID returns a pointer to the container preset with the given ID, or nil.
func (inv *Inventory) FindContainerByID(id string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].ID == id {
			return &inv.Containers[i]
		}
	}
	return nil
}

// FindCargoByID returns a pointer to the cargo preset with the given ID, or nil.
func (inv *Inventory) FindCargoByID(id string) *CargoPreset {
	for i := range inv.Cargo {
		if inv.Cargo[i].ID == id {
			return &inv.Cargo[i]
		}
	}
	return nil
}

// ContainerNames returns a list of container preset names for UI dropdowns.
func (inv *Inventory) ContainerNames() []string {
	names := make([]string, len(inv.Containers))
	for i, c := range inv.Containers {
		names[i] = c.Name
	}
	return names
}

// CargoNames returns a list of cargo preset names for UI dropdowns.
func (inv *Inventory) CargoNames() []string {
	names := make([]string, len(inv.Cargo))
	for i, c := range inv.Cargo {
		names[i] = c.Name
	}
	return names
}

// FindContainerByName returns a pointer to the first container preset with the given name, or nil.
func (inv *Inventory) FindContainerByName(name string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].Name == name {
			return &inv.Containers[i]
		}
	}
	return nil
}

// FindCargoByName returns a pointer to the first cargo preset with the given name, or nil.
func (inv *Inventory) FindCargoByName(name string) *CargoPreset {
	for i := range inv.Cargo {
		if inv.Cargo[i].Name == name {
			return &inv.Cargo[i]
		}
	}
	return nil
}
