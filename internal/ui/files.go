package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/piwi3910/LoadPlan/internal/export"
	"github.com/piwi3910/LoadPlan/internal/importer"
	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
	"github.com/piwi3910/LoadPlan/internal/session"
)

// ─── Project files ─────────────────────────────────────────

func (a *App) saveProject() {
	if a.projectPath == "" {
		a.saveProjectAs()
		return
	}
	if err := a.writeProject(a.projectPath); err != nil {
		dialog.ShowError(err, a.window)
	}
}

func (a *App) saveProjectAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if !strings.HasSuffix(path, project.FileExtension) {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + project.FileExtension
		}
		if err := a.writeProject(path); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(a.sess.Name() + project.FileExtension)
	d.Show()
}

func (a *App) writeProject(path string) error {
	if err := project.SaveProject(path, a.sess.Project()); err != nil {
		return err
	}
	a.projectPath = path
	a.rememberProject(path)
	a.flash("Saved %s", filepath.Base(path))
	a.logger.Info("project saved", "path", path)
	a.refresh(a.sess.Snapshot())
	return nil
}

func (a *App) showOpenProjectDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		if err := a.openProject(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// openProject loads a project file and makes it the active session.
func (a *App) openProject(path string) error {
	p, err := project.LoadProject(path)
	if err != nil {
		return err
	}
	sess, err := session.FromProject(p, a.logger)
	if err != nil {
		return err
	}
	a.attach(sess, path)
	a.rememberProject(path)
	a.logger.Info("project opened", "path", path, "instances", len(p.Plan.Instances))
	return nil
}

// rememberProject records path in the recent list and rebuilds the menu.
func (a *App) rememberProject(path string) {
	a.config.AddRecentProject(path, recentProjectLimit)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("failed to save preferences", "err", err)
	}
	a.SetupMenus()
}

// ─── Import ────────────────────────────────────────────────

func (a *App) importCargo() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(importer.ImportFile(reader.URI().Path()))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx", ".xlsm", ".csv", ".tsv", ".txt"}))
	d.Show()
}

// handleImportResult adds the imported records as cargo types. Records the
// layout rejects are reported together with the parse errors.
func (a *App) handleImportResult(result importer.ImportResult) {
	for _, w := range result.Warnings {
		a.logger.Warn("import", "warning", w)
	}

	problems := result.Errors
	added := a.addCargo(result.Cargo, &problems)

	if len(problems) > 0 {
		dialog.ShowError(fmt.Errorf("problems encountered during import:\n\n%s", strings.Join(problems, "\n")), a.window)
	}
	if added > 0 {
		msg := fmt.Sprintf("Imported %d cargo types.", added)
		if len(problems) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d entries were skipped.", len(problems))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

func (a *App) addCargo(specs []model.CargoSpec, problems *[]string) int {
	added := 0
	for _, spec := range specs {
		if _, err := a.sess.AddType(spec); err != nil {
			*problems = append(*problems, fmt.Sprintf("%s: %v", spec.Name, err))
			continue
		}
		added++
	}
	return added
}

func (a *App) loadManifest() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		if err := a.openManifest(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".toml"}))
	d.Show()
}

// openManifest starts a new session from a load manifest. Every cargo entry
// becomes a type; nothing is placed.
func (a *App) openManifest(path string) error {
	m, err := project.LoadManifest(path)
	if err != nil {
		return err
	}
	c, cargo, err := m.Resolve(a.inventory)
	if err != nil {
		return err
	}
	settings := model.DefaultSettings()
	a.config.ApplyToSettings(&settings)

	sess := session.New(c, m.Settings(settings), a.logger)
	if m.Name != "" {
		sess.SetName(m.Name)
	}
	a.attach(sess, "")

	var problems []string
	a.addCargo(cargo, &problems)
	if len(problems) > 0 {
		return errors.New("some cargo entries were skipped:\n\n" + strings.Join(problems, "\n"))
	}
	return nil
}

// ─── Export ────────────────────────────────────────────────

// exportTo asks for a destination and runs write on it.
func (a *App) exportTo(title, fileName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("exported", "kind", title, "path", path)
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", title, path), a.window)
	}, a.window)
	d.SetFileName(fileName)
	d.Show()
}

func (a *App) exportPDF() {
	a.exportTo("PDF report", a.sess.Name()+".pdf", func(path string) error {
		return export.ExportPDF(path, a.sess.Project())
	})
}

func (a *App) exportLabels() {
	if len(a.sess.Snapshot().Instances) == 0 {
		dialog.ShowInformation("No boxes", "Place boxes before printing labels.", a.window)
		return
	}
	a.exportTo("Cargo labels", a.sess.Name()+"-labels.pdf", func(path string) error {
		return export.ExportLabels(path, a.sess.Snapshot())
	})
}

func (a *App) exportXLSX() {
	a.exportTo("Excel workbook", a.sess.Name()+".xlsx", func(path string) error {
		return export.ExportXLSX(path, a.sess.Snapshot())
	})
}

func (a *App) exportDXF() {
	a.exportTo("DXF drawing", a.sess.Name()+".dxf", func(path string) error {
		return export.ExportDXF(path, a.sess.Snapshot())
	})
}

func (a *App) exportManifest() {
	a.exportTo("Manifest", a.sess.Name()+".toml", func(path string) error {
		m := project.ManifestFromPlan(a.sess.Name(), a.sess.Snapshot(), a.sess.Settings())
		return project.SaveManifest(path, m)
	})
}
