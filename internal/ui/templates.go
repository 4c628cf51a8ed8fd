package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
	"github.com/piwi3910/LoadPlan/internal/session"
)

func (a *App) showSaveTemplateDialog() {
	if len(a.sess.Types()) == 0 {
		dialog.ShowInformation("Nothing to save", "Add cargo types before saving a template.", a.window)
		return
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.sess.Name())
	descEntry := widget.NewMultiLineEntry()
	descEntry.SetPlaceHolder("Optional description")

	form := dialog.NewForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("template name must not be empty"), a.window)
				return
			}
			t := model.NewLoadTemplate(name, descEntry.Text, a.sess.Snapshot(), a.sess.Settings())
			if existing := a.templates.FindByName(name); existing != nil {
				t.ID, t.CreatedAt = existing.ID, existing.CreatedAt
				a.templates.Remove(existing.ID)
			}
			a.templates.Add(t)
			if err := project.SaveDefaultTemplates(a.templates); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.flash("Template %q saved", name)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 260))
	form.Show()
}

func (a *App) showNewFromTemplateDialog() {
	names := a.templates.Names()
	if len(names) == 0 {
		dialog.ShowInformation("No Templates", "Save a load as a template first (File > Save as Template).", a.window)
		return
	}

	templateSelect := widget.NewSelect(names, nil)
	templateSelect.SetSelected(names[0])
	nameEntry := widget.NewEntry()
	nameEntry.SetText("Untitled")

	form := dialog.NewForm("New from Template", "Create", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Template", templateSelect),
			widget.NewFormItem("Project Name", nameEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			t := a.templates.FindByName(templateSelect.Selected)
			if t == nil {
				return
			}
			sess, err := session.FromProject(t.ToProject(nameEntry.Text), a.logger)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.attach(sess, "")
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 200))
	form.Show()
}
