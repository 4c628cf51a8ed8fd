package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadPlan/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	if dir := filepath.Base(filepath.Dir(path)); dir != ".loadplan" {
		t.Errorf("expected parent dir .loadplan, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_inventory.json")

	inv := model.Inventory{
		Containers: []model.ContainerPreset{
			model.NewContainerPreset("Reefer 20ft", 5450, 2290, 2260),
		},
		Cargo: []model.CargoPreset{
			model.NewCargoPreset("Bale", 1500, 1000, 900, 300),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Containers) != 1 || loaded.Containers[0].Name != "Reefer 20ft" {
		t.Errorf("unexpected containers %+v", loaded.Containers)
	}
	if loaded.Containers[0].Length != 5450 {
		t.Errorf("expected length 5450, got %f", loaded.Containers[0].Length)
	}
	if len(loaded.Cargo) != 1 || loaded.Cargo[0].Weight != 300 {
		t.Errorf("unexpected cargo %+v", loaded.Cargo)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	defaults := model.DefaultInventory()
	if len(inv.Containers) != len(defaults.Containers) {
		t.Errorf("expected %d default containers, got %d", len(defaults.Containers), len(inv.Containers))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("default inventory was not written")
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestImportInventoryMergesAndSkipsDuplicates(t *testing.T) {
	existing := model.DefaultInventory()

	extra := model.NewCargoPreset("Bale", 1500, 1000, 900, 300)
	imported := model.Inventory{
		Containers: []model.ContainerPreset{existing.Containers[0]},
		Cargo:      []model.CargoPreset{existing.Cargo[0], extra},
	}
	data, err := json.Marshal(imported)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}

	if len(merged.Containers) != len(existing.Containers) {
		t.Errorf("duplicate container was added: %d", len(merged.Containers))
	}
	if len(merged.Cargo) != len(existing.Cargo)+1 {
		t.Errorf("expected one new cargo preset, got %d total", len(merged.Cargo))
	}
	if merged.FindCargoByName("Bale") == nil {
		t.Error("imported preset not found by name")
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	merged, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Error("expected error for missing file")
	}
	if len(merged.Cargo) != len(existing.Cargo) {
		t.Error("existing inventory should be returned unchanged")
	}
}
