package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/ui/widgets"
)

// ─── Cargo Types Panel ─────────────────────────────────────

func (a *App) buildCargoPanel() fyne.CanvasObject {
	a.typesContainer = container.NewVBox()

	addBtn := widget.NewButtonWithIcon("Add Cargo", theme.ContentAddIcon(), a.showAddCargoDialog)
	catalogBtn := widget.NewButtonWithIcon("From Catalog", theme.ListIcon(), a.showAddFromCatalogDialog)

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Cargo Types", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			catalogBtn,
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.typesContainer),
	)
}

func (a *App) refreshTypesList(types []model.CargoType) {
	a.typesContainer.RemoveAll()

	if len(types) == 0 {
		a.typesContainer.Add(widget.NewLabel("No cargo yet. Click 'Add Cargo' to begin."))
		return
	}

	for _, ct := range types {
		a.typesContainer.Add(a.typeRow(ct))
		a.typesContainer.Add(widget.NewSeparator())
	}
}

func (a *App) typeRow(ct model.CargoType) fyne.CanvasObject {
	id := ct.ID

	swatch := canvas.NewRectangle(widgets.TypeColor(id))
	swatch.SetMinSize(fyne.NewSize(12, 12))

	name := widget.NewLabelWithStyle(ct.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	details := widget.NewLabel(fmt.Sprintf("%.0f x %.0f x %.0f mm, %g kg", ct.Length, ct.Width, ct.Height, ct.Weight))
	counts := widget.NewLabel(fmt.Sprintf("%d / %d placed", ct.Placed, ct.Qty))
	if ct.Left() > 0 && ct.Placed > 0 {
		counts.Importance = widget.WarningImportance
	}

	buttons := container.NewHBox(
		newIconButtonWithTooltip(theme.ContentAddIcon(), "Place one box", func() {
			if _, err := a.sess.PlaceOne(id); err != nil {
				a.flash("Cannot place %s: %v", ct.Name, err)
			}
		}),
		newIconButtonWithTooltip(theme.MediaFastForwardIcon(), "Place all remaining", func() {
			res, err := a.sess.PlaceBatch(id)
			if err != nil {
				a.flash("Cannot place %s: %v", ct.Name, err)
				return
			}
			if res.Remaining > 0 {
				a.flash("%d of %s do not fit", res.Remaining, ct.Name)
			}
		}),
		newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit cargo type", func() {
			a.showEditCargoDialog(id)
		}),
		newIconButtonWithTooltip(theme.DeleteIcon(), "Remove cargo type and its boxes", func() {
			a.confirmRemoveType(ct)
		}),
	)

	return container.NewVBox(
		container.NewHBox(container.NewCenter(swatch), name, layout.NewSpacer(), counts),
		container.NewHBox(details, layout.NewSpacer(), buttons),
	)
}

func (a *App) confirmRemoveType(ct model.CargoType) {
	if ct.Placed == 0 {
		if err := a.sess.RemoveType(ct.ID); err != nil {
			dialog.ShowError(err, a.window)
		}
		return
	}
	msg := fmt.Sprintf("Remove %s and its %d placed boxes?", ct.Name, ct.Placed)
	dialog.ShowConfirm("Remove Cargo Type", msg, func(ok bool) {
		if !ok {
			return
		}
		if err := a.sess.RemoveType(ct.ID); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}

// cargoForm holds the entries shared by the add and edit dialogs.
type cargoForm struct {
	name, qty, length, width, height, weight *widget.Entry
}

func newCargoForm(spec model.CargoSpec) *cargoForm {
	f := &cargoForm{
		name:   widget.NewEntry(),
		qty:    widget.NewEntry(),
		length: widget.NewEntry(),
		width:  widget.NewEntry(),
		height: widget.NewEntry(),
		weight: widget.NewEntry(),
	}
	f.name.SetPlaceHolder("Cargo name")
	f.name.SetText(spec.Name)
	f.qty.SetText(strconv.Itoa(spec.Qty))
	f.length.SetPlaceHolder("Length in mm")
	f.width.SetPlaceHolder("Width in mm")
	f.height.SetPlaceHolder("Height in mm")
	f.weight.SetPlaceHolder("Weight per box in kg")
	if spec.Length > 0 {
		f.length.SetText(formatNumber(spec.Length))
		f.width.SetText(formatNumber(spec.Width))
		f.height.SetText(formatNumber(spec.Height))
		f.weight.SetText(formatNumber(spec.Weight))
	}
	return f
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *cargoForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Name", f.name),
		widget.NewFormItem("Quantity", f.qty),
		widget.NewFormItem("Length (mm)", f.length),
		widget.NewFormItem("Width (mm)", f.width),
		widget.NewFormItem("Height (mm)", f.height),
		widget.NewFormItem("Weight (kg)", f.weight),
	}
}

// spec parses the entries. Range checks are left to the layout, which
// reports them as validation errors.
func (f *cargoForm) spec() (model.CargoSpec, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(f.qty.Text))
	if err != nil {
		return model.CargoSpec{}, &model.ValidationError{Field: "qty", Message: fmt.Sprintf("%q is not a whole number", f.qty.Text)}
	}
	spec := model.CargoSpec{Name: f.name.Text, Qty: qty}
	fields := []struct {
		name  string
		entry *widget.Entry
		dst   *float64
	}{
		{"length", f.length, &spec.Length},
		{"width", f.width, &spec.Width},
		{"height", f.height, &spec.Height},
		{"weight", f.weight, &spec.Weight},
	}
	for _, fl := range fields {
		text := strings.ReplaceAll(strings.TrimSpace(fl.entry.Text), ",", ".")
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return model.CargoSpec{}, &model.ValidationError{Field: fl.name, Message: fmt.Sprintf("%q is not a number", fl.entry.Text)}
		}
		*fl.dst = v
	}
	return spec, nil
}

func (a *App) showAddCargoDialog() {
	f := newCargoForm(model.CargoSpec{Name: fmt.Sprintf("Cargo %d", len(a.sess.Types())+1), Qty: 1})

	form := dialog.NewForm("Add Cargo Type", "Add", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			spec, err := f.spec()
			if err == nil {
				_, err = a.sess.AddType(spec)
			}
			if err != nil {
				dialog.ShowError(err, a.window)
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 380))
	form.Show()
}

func (a *App) showEditCargoDialog(id model.TypeID) {
	plan := a.sess.Snapshot()
	ct, ok := plan.TypeByID(id)
	if !ok {
		return
	}
	f := newCargoForm(ct.Spec())
	if ct.Placed > 0 {
		// Dimensions are fixed once boxes are placed.
		f.length.Disable()
		f.width.Disable()
		f.height.Disable()
	}

	form := dialog.NewForm("Edit Cargo Type", "Save", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			spec, err := f.spec()
			if err == nil {
				err = a.sess.EditType(id, spec)
			}
			if err != nil {
				dialog.ShowError(err, a.window)
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 380))
	form.Show()
}

func (a *App) showAddFromCatalogDialog() {
	names := a.inventory.CargoNames()
	if len(names) == 0 {
		dialog.ShowInformation("Empty Catalog", "Add cargo presets under Tools > Presets first.", a.window)
		return
	}

	presetSelect := widget.NewSelect(names, nil)
	presetSelect.SetSelected(names[0])
	qtyEntry := widget.NewEntry()
	qtyEntry.SetText("1")

	form := dialog.NewForm("Add from Catalog", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Preset", presetSelect),
			widget.NewFormItem("Quantity", qtyEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			preset := a.inventory.FindCargoByName(presetSelect.Selected)
			if preset == nil {
				return
			}
			qty, err := strconv.Atoi(strings.TrimSpace(qtyEntry.Text))
			if err != nil || qty <= 0 {
				dialog.ShowError(fmt.Errorf("quantity must be a positive whole number"), a.window)
				return
			}
			if _, err := a.sess.AddType(preset.ToSpec(qty)); err != nil {
				dialog.ShowError(err, a.window)
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(380, 200))
	form.Show()
}
