package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
)

// ─── Presets Dialog ────────────────────────────────────────

func (a *App) showPresetsDialog() {
	containerList := container.NewVBox()
	cargoList := container.NewVBox()
	var refreshLists func()

	refreshLists = func() {
		a.fillContainerPresets(containerList, refreshLists)
		a.fillCargoPresets(cargoList, refreshLists)
		a.syncContainerSelect(a.sess.Snapshot().Container)
	}
	refreshLists()

	addContainerBtn := widget.NewButtonWithIcon("Add Container", theme.ContentAddIcon(), func() {
		a.showContainerPresetDialog(-1, refreshLists)
	})
	addCargoBtn := widget.NewButtonWithIcon("Add Cargo", theme.ContentAddIcon(), func() {
		a.showCargoPresetDialog(-1, refreshLists)
	})

	tabs := container.NewAppTabs(
		container.NewTabItem("Containers", container.NewBorder(
			container.NewHBox(layout.NewSpacer(), addContainerBtn), nil, nil, nil,
			container.NewVScroll(containerList))),
		container.NewTabItem("Cargo Catalog", container.NewBorder(
			container.NewHBox(layout.NewSpacer(), addCargoBtn), nil, nil, nil,
			container.NewVScroll(cargoList))),
	)

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(refreshLists)
	})
	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), a.exportInventory)

	content := container.NewBorder(
		nil,
		container.NewHBox(layout.NewSpacer(), importBtn, exportBtn),
		nil, nil,
		tabs,
	)

	d := dialog.NewCustom("Presets", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 500))
	d.Show()
}

func headerRow(titles ...string) fyne.CanvasObject {
	cells := make([]fyne.CanvasObject, len(titles))
	for i, t := range titles {
		cells[i] = widget.NewLabelWithStyle(t, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	return container.NewGridWithColumns(len(titles), cells...)
}

func (a *App) fillContainerPresets(list *fyne.Container, onChange func()) {
	list.RemoveAll()
	if len(a.inventory.Containers) == 0 {
		list.Add(widget.NewLabel("No container presets defined."))
		return
	}
	list.Add(headerRow("Name", "Length", "Width", "Height", "", ""))
	list.Add(widget.NewSeparator())

	for i := range a.inventory.Containers {
		idx := i
		c := a.inventory.Containers[idx]
		list.Add(container.NewGridWithColumns(6,
			widget.NewLabel(c.Name),
			widget.NewLabel(fmt.Sprintf("%.0f mm", c.Length)),
			widget.NewLabel(fmt.Sprintf("%.0f mm", c.Width)),
			widget.NewLabel(fmt.Sprintf("%.0f mm", c.Height)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showContainerPresetDialog(idx, onChange)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.inventory.Containers = append(a.inventory.Containers[:idx], a.inventory.Containers[idx+1:]...)
				a.saveInventory()
				onChange()
			}),
		))
	}
}

func (a *App) fillCargoPresets(list *fyne.Container, onChange func()) {
	list.RemoveAll()
	if len(a.inventory.Cargo) == 0 {
		list.Add(widget.NewLabel("No cargo presets defined."))
		return
	}
	list.Add(headerRow("Name", "L x W x H", "Weight", "", ""))
	list.Add(widget.NewSeparator())

	for i := range a.inventory.Cargo {
		idx := i
		c := a.inventory.Cargo[idx]
		list.Add(container.NewGridWithColumns(5,
			widget.NewLabel(c.Name),
			widget.NewLabel(fmt.Sprintf("%.0f x %.0f x %.0f", c.Length, c.Width, c.Height)),
			widget.NewLabel(fmt.Sprintf("%g kg", c.Weight)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showCargoPresetDialog(idx, onChange)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.inventory.Cargo = append(a.inventory.Cargo[:idx], a.inventory.Cargo[idx+1:]...)
				a.saveInventory()
				onChange()
			}),
		))
	}
}

// parsePositive reads every entry as a number greater than zero.
func parsePositive(entries map[string]*widget.Entry) (map[string]float64, error) {
	out := make(map[string]float64, len(entries))
	for name, e := range entries {
		v, err := strconv.ParseFloat(strings.TrimSpace(e.Text), 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%s must be a number > 0", strings.ToLower(name))
		}
		out[name] = v
	}
	return out, nil
}

// showContainerPresetDialog adds a preset when idx is negative and edits
// the preset at idx otherwise.
func (a *App) showContainerPresetDialog(idx int, onDone func()) {
	preset := model.ContainerPreset{Name: "New Container", Length: 12032, Width: 2352, Height: 2393}
	title, confirm := "Add Container Preset", "Add"
	if idx >= 0 {
		preset = a.inventory.Containers[idx]
		title, confirm = "Edit Container Preset", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(preset.Name)
	dims := map[string]*widget.Entry{
		"Length": widget.NewEntry(),
		"Width":  widget.NewEntry(),
		"Height": widget.NewEntry(),
	}
	dims["Length"].SetText(fmt.Sprintf("%.0f", preset.Length))
	dims["Width"].SetText(fmt.Sprintf("%.0f", preset.Width))
	dims["Height"].SetText(fmt.Sprintf("%.0f", preset.Height))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Length (mm)", dims["Length"]),
			widget.NewFormItem("Width (mm)", dims["Width"]),
			widget.NewFormItem("Height (mm)", dims["Height"]),
		},
		func(ok bool) {
			if !ok {
				return
			}
			v, err := parsePositive(dims)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if idx < 0 {
				a.inventory.Containers = append(a.inventory.Containers,
					model.NewContainerPreset(name, v["Length"], v["Width"], v["Height"]))
			} else {
				p := &a.inventory.Containers[idx]
				p.Name, p.Length, p.Width, p.Height = name, v["Length"], v["Width"], v["Height"]
			}
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 320))
	form.Show()
}

// showCargoPresetDialog adds a catalog entry when idx is negative and edits
// the entry at idx otherwise.
func (a *App) showCargoPresetDialog(idx int, onDone func()) {
	preset := model.CargoPreset{Name: "New Cargo", Length: 1200, Width: 800, Height: 1000, Weight: 500}
	title, confirm := "Add Cargo Preset", "Add"
	if idx >= 0 {
		preset = a.inventory.Cargo[idx]
		title, confirm = "Edit Cargo Preset", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(preset.Name)
	fields := map[string]*widget.Entry{
		"Length": widget.NewEntry(),
		"Width":  widget.NewEntry(),
		"Height": widget.NewEntry(),
		"Weight": widget.NewEntry(),
	}
	fields["Length"].SetText(formatNumber(preset.Length))
	fields["Width"].SetText(formatNumber(preset.Width))
	fields["Height"].SetText(formatNumber(preset.Height))
	fields["Weight"].SetText(formatNumber(preset.Weight))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Length (mm)", fields["Length"]),
			widget.NewFormItem("Width (mm)", fields["Width"]),
			widget.NewFormItem("Height (mm)", fields["Height"]),
			widget.NewFormItem("Weight (kg)", fields["Weight"]),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name, err := model.ValidateName(nameEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			v, err := parsePositive(fields)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if idx < 0 {
				a.inventory.Cargo = append(a.inventory.Cargo,
					model.NewCargoPreset(name, v["Length"], v["Width"], v["Height"], v["Weight"]))
			} else {
				p := &a.inventory.Cargo[idx]
				p.Name, p.Length, p.Width, p.Height, p.Weight = name, v["Length"], v["Width"], v["Height"], v["Weight"]
			}
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 360))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.inventory = merged
		a.saveInventory()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Presets now contain %d containers and %d cargo entries.",
				len(a.inventory.Containers), len(a.inventory.Cargo)),
			a.window)
	}, a.window)
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.SaveInventory(writer.URI().Path(), a.inventory); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Presets exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("inventory.json")
	d.Show()
}

// saveInventory persists the current inventory to disk.
func (a *App) saveInventory() {
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
	}
}
