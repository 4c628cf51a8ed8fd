// Package ui is the LoadPlan desktop application: three interactive views of
// the container, the cargo type table and the menus around a session.
package ui

import (
	"fmt"
	"path/filepath"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/LoadPlan/internal/geometry"
	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
	"github.com/piwi3910/LoadPlan/internal/session"
	"github.com/piwi3910/LoadPlan/internal/ui/widgets"
)

const recentProjectLimit = 10

// App holds all application state and UI references.
type App struct {
	window fyne.Window
	logger *log.Logger

	sess          *session.Session
	projectPath   string
	config        model.AppConfig
	inventory     model.Inventory
	inventoryPath string
	templates     model.TemplateStore

	views     map[geometry.View]*widgets.ViewCanvas
	gestures  map[geometry.View]*gesture
	lastView  geometry.View
	lastPoint geometry.Point
	lastTypes []model.CargoType

	// UI references for dynamic updates
	typesContainer  *fyne.Container
	containerSelect *widget.Select
	statusLabel     *widget.Label
	messageLabel    *widget.Label
	selectionLabel  *widget.Label
	undoBtn         *ttwidget.Button
	redoBtn         *ttwidget.Button
	syncing         bool
}

// NewApp creates the application around an empty session. Preferences,
// presets and templates are read from the user's config directory; a
// missing or broken file falls back to defaults with a warning.
func NewApp(window fyne.Window, logger *log.Logger, inventoryPath string) *App {
	if logger == nil {
		logger = log.Default()
	}
	if inventoryPath == "" {
		inventoryPath = project.DefaultInventoryPath()
	}
	a := &App{
		window:        window,
		logger:        logger,
		inventoryPath: inventoryPath,
		config:        model.DefaultAppConfig(),
		inventory:     model.DefaultInventory(),
		templates:     model.NewTemplateStore(),
		views:         make(map[geometry.View]*widgets.ViewCanvas),
		gestures:      make(map[geometry.View]*gesture),
	}
	a.loadUserData()
	a.attach(a.newSession(), "")
	return a
}

func (a *App) loadUserData() {
	if cfg, err := project.LoadAppConfig(project.DefaultConfigPath()); err != nil {
		a.logger.Warn("failed to load preferences", "err", err)
	} else {
		a.config = cfg
	}
	if inv, err := project.LoadInventory(a.inventoryPath); err != nil {
		a.logger.Warn("failed to load presets", "path", a.inventoryPath, "err", err)
	} else {
		a.inventory = inv
	}
	if store, err := project.LoadDefaultTemplates(); err != nil {
		a.logger.Warn("failed to load templates", "err", err)
	} else {
		a.templates = store
	}
}

// newSession creates an empty session using the configured default
// container and settings.
func (a *App) newSession() *session.Session {
	settings := model.DefaultSettings()
	a.config.ApplyToSettings(&settings)

	c := model.DefaultContainer()
	if preset := a.inventory.FindContainerByName(a.config.DefaultContainer); preset != nil {
		if pc, err := preset.ToContainer(); err == nil {
			c = pc
		}
	}
	return session.New(c, settings, a.logger)
}

// attach makes sess the active session. Views, gestures and panels follow it.
func (a *App) attach(sess *session.Session, path string) {
	a.sess = sess
	a.projectPath = path
	a.lastTypes = nil
	for _, v := range geometry.Views {
		a.gestures[v] = newGesture(sess, v)
	}
	sess.OnChange(a.refresh)
	if a.statusLabel != nil {
		a.refresh(sess.Snapshot())
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	undoItem := fyne.NewMenuItem("Undo", a.undo)
	undoItem.Shortcut = shortcutUndo
	redoItem := fyne.NewMenuItem("Redo", a.redo)
	redoItem.Shortcut = shortcutRedo
	copyItem := fyne.NewMenuItem("Copy", a.copySelection)
	copyItem.Shortcut = shortcutCopy
	pasteItem := fyne.NewMenuItem("Paste", a.paste)
	pasteItem.Shortcut = shortcutPaste

	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.attach(a.newSession(), "")
		}),
		fyne.NewMenuItem("New from Template...", a.showNewFromTemplateDialog),
		fyne.NewMenuItem("Open Project...", a.showOpenProjectDialog),
		a.recentProjectsItem(),
		fyne.NewMenuItem("Save Project", a.saveProject),
		fyne.NewMenuItem("Save Project As...", a.saveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Cargo from CSV/Excel...", a.importCargo),
		fyne.NewMenuItem("Load Manifest...", a.loadManifest),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", a.exportPDF),
		fyne.NewMenuItem("Export Cargo Labels...", a.exportLabels),
		fyne.NewMenuItem("Export Excel...", a.exportXLSX),
		fyne.NewMenuItem("Export DXF...", a.exportDXF),
		fyne.NewMenuItem("Export Manifest...", a.exportManifest),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save as Template...", a.showSaveTemplateDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		undoItem,
		redoItem,
		fyne.NewMenuItemSeparator(),
		copyItem,
		pasteItem,
		fyne.NewMenuItem("Rotate Selected", a.rotateSelection),
		fyne.NewMenuItem("Delete Selected", a.deleteSelection),
		fyne.NewMenuItem("Select None", func() { a.sess.ClearSelection() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Boxes", a.clearAll),
	)

	// Load Menu
	loadMenu := fyne.NewMenu("Load",
		fyne.NewMenuItem("Add Cargo Type...", a.showAddCargoDialog),
		fyne.NewMenuItem("Add from Catalog...", a.showAddFromCatalogDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Place All", a.placeAll),
	)

	// Tools Menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Layout Settings...", a.showLayoutSettingsDialog),
		fyne.NewMenuItem("Presets...", a.showPresetsDialog),
		fyne.NewMenuItem("Preferences...", a.showPreferencesDialog),
		fyne.NewMenuItem("Backup / Restore...", a.showBackupDialog),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard Shortcuts", a.showShortcutsDialog),
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, loadMenu, toolsMenu, helpMenu))
}

func (a *App) recentProjectsItem() *fyne.MenuItem {
	item := fyne.NewMenuItem("Open Recent", nil)
	var items []*fyne.MenuItem
	for _, path := range a.config.RecentProjects {
		p := path
		items = append(items, fyne.NewMenuItem(filepath.Base(p), func() {
			if err := a.openProject(p); err != nil {
				dialog.ShowError(err, a.window)
			}
		}))
	}
	if len(items) == 0 {
		none := fyne.NewMenuItem("No recent projects", nil)
		none.Disabled = true
		items = append(items, none)
	}
	item.ChildMenu = fyne.NewMenu("", items...)
	return item
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About LoadPlan",
		"LoadPlan - Cargo Container Layout\n\n"+
			"Plan how boxes are loaded into a container and\n"+
			"print the layout for the loading crew.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

func (a *App) showShortcutsDialog() {
	dialog.ShowInformation("Keyboard Shortcuts",
		"Drag            move box or selection\n"+
			"Shift+Drag      add to selection\n"+
			"Double click    remove box\n"+
			"R               rotate selected box\n"+
			"Arrows          nudge selection\n"+
			"Delete          remove selection\n"+
			"Escape          clear selection\n"+
			"Ctrl+C / Ctrl+V copy / paste at pointer\n"+
			"Ctrl+Z / Ctrl+Y undo / redo",
		a.window)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.statusLabel = widget.NewLabel("")
	a.messageLabel = widget.NewLabel("")
	a.selectionLabel = widget.NewLabel("")

	toolbar := a.buildToolbar()
	split := container.NewHSplit(a.buildCargoPanel(), a.buildViewsPanel())
	split.Offset = 0.3

	statusBar := container.NewHBox(
		a.statusLabel,
		layout.NewSpacer(),
		a.messageLabel,
		widget.NewSeparator(),
		a.selectionLabel,
	)

	a.refresh(a.sess.Snapshot())
	return container.NewBorder(toolbar, statusBar, nil, nil, split)
}

func (a *App) buildToolbar() fyne.CanvasObject {
	a.undoBtn = newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo (Ctrl+Z)", a.undo)
	a.redoBtn = newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo (Ctrl+Y)", a.redo)

	a.containerSelect = widget.NewSelect(a.inventory.ContainerNames(), a.selectContainer)
	a.containerSelect.PlaceHolder = "Container"

	return container.NewHBox(
		widget.NewLabel("Container"),
		a.containerSelect,
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.MediaFastForwardIcon(), "Place all cargo", a.placeAll),
		newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Rotate selected (R)", a.rotateSelection),
		newIconButtonWithTooltip(theme.ContentCopyIcon(), "Copy (Ctrl+C)", a.copySelection),
		newIconButtonWithTooltip(theme.ContentPasteIcon(), "Paste at pointer (Ctrl+V)", a.paste),
		newIconButtonWithTooltip(theme.DeleteIcon(), "Delete selected (Del)", a.deleteSelection),
		widget.NewSeparator(),
		a.undoBtn,
		a.redoBtn,
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ContentClearIcon(), "Remove all placed boxes", a.clearAll),
	)
}

// ─── Refresh ───────────────────────────────────────────────

// refresh redraws everything that depends on the plan. It runs after every
// committed change, including each drag frame, so the type table is only
// rebuilt when the types changed.
func (a *App) refresh(plan model.Plan) {
	views := a.sess.Views()
	selection := a.sess.Selection()
	for v, vc := range a.views {
		vc.Update(views.For(v), plan, selection)
	}

	if !slices.Equal(a.lastTypes, plan.Types) {
		a.lastTypes = slices.Clone(plan.Types)
		a.refreshTypesList(plan.Types)
	}

	a.statusLabel.SetText(statusText(a.sess.Status()))
	a.selectionLabel.SetText(fmt.Sprintf("%d selected", len(selection)))
	if a.undoBtn != nil {
		setEnabled(a.undoBtn, a.sess.CanUndo())
		setEnabled(a.redoBtn, a.sess.CanRedo())
	}
	a.syncContainerSelect(plan.Container)

	title := "LoadPlan - " + a.sess.Name()
	if a.projectPath != "" {
		title += " (" + filepath.Base(a.projectPath) + ")"
	}
	a.window.SetTitle(title)
}

func setEnabled(b *ttwidget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// statusText formats the weight and volume line shown in the status bar.
func statusText(s model.LoadStatus) string {
	text := fmt.Sprintf("Boxes: %d/%d   Weight: %.0f / %.0f kg (%.1f%%)   Volume: %.2f / %.2f m³ (%.1f%%)",
		s.Instances, s.RequestedBoxes,
		s.TotalWeightKg, s.MaxWeightKg, s.WeightPercent,
		s.TotalVolumeM3, s.MaxVolumeM3, s.VolumePercent)
	if s.Overweight {
		text += "   OVERWEIGHT"
	}
	if s.OverVolume {
		text += "   OVER VOLUME"
	}
	return text
}

// flash shows a short message in the status bar.
func (a *App) flash(format string, args ...any) {
	a.messageLabel.SetText(fmt.Sprintf(format, args...))
}

// ─── Container ─────────────────────────────────────────────

func (a *App) syncContainerSelect(c model.Container) {
	if a.containerSelect == nil {
		return
	}
	a.syncing = true
	defer func() { a.syncing = false }()
	a.containerSelect.Options = a.inventory.ContainerNames()
	if slices.Contains(a.containerSelect.Options, c.Label) {
		a.containerSelect.SetSelected(c.Label)
	} else {
		a.containerSelect.ClearSelected()
		a.containerSelect.PlaceHolder = c.Label
	}
	a.containerSelect.Refresh()
}

func (a *App) selectContainer(name string) {
	if a.syncing || name == "" {
		return
	}
	current := a.sess.Snapshot().Container
	if name == current.Label {
		return
	}
	preset := a.inventory.FindContainerByName(name)
	if preset == nil {
		return
	}
	c, err := preset.ToContainer()
	if err == nil {
		err = a.sess.SetContainer(c)
	}
	if err != nil {
		dialog.ShowError(err, a.window)
		a.syncContainerSelect(current)
	}
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) undo() {
	if !a.sess.Undo() {
		a.flash("Nothing to undo")
	}
}

func (a *App) redo() {
	if !a.sess.Redo() {
		a.flash("Nothing to redo")
	}
}

func (a *App) placeAll() {
	if len(a.sess.Types()) == 0 {
		dialog.ShowInformation("Nothing to place", "Add at least one cargo type first.", a.window)
		return
	}
	batches, err := a.sess.PlaceAll()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	placed, remaining := 0, 0
	for _, b := range batches {
		placed += len(b.Result.Placed)
		remaining += b.Result.Remaining
	}
	if remaining > 0 {
		a.flash("Placed %d boxes, %d do not fit", placed, remaining)
		return
	}
	a.flash("Placed %d boxes", placed)
}

func (a *App) rotateSelection() {
	if len(a.sess.Selection()) != 1 {
		a.flash("Select exactly one box to rotate")
		return
	}
	if _, err := a.sess.RotateSelected(); err != nil {
		a.flash("Cannot rotate: %v", err)
	}
}

func (a *App) copySelection() {
	if n := a.sess.CopySelected(); n > 0 {
		a.flash("Copied %d boxes", n)
	}
}

func (a *App) paste() {
	if a.sess.ClipboardLen() == 0 {
		a.flash("Clipboard is empty")
		return
	}
	res := a.sess.PasteAt(a.lastView, a.lastPoint)
	if len(res.Failed) > 0 {
		a.flash("Pasted %d boxes, %d skipped: %v", len(res.Placed), len(res.Failed), res.Failed[0].Err)
		return
	}
	a.flash("Pasted %d boxes", len(res.Placed))
}

func (a *App) deleteSelection() {
	if removed := a.sess.DeleteSelected(); len(removed) > 0 {
		a.flash("Removed %d boxes", len(removed))
	}
}

func (a *App) clearAll() {
	if len(a.sess.Snapshot().Instances) == 0 {
		return
	}
	dialog.ShowConfirm("Clear All Boxes", "Remove every placed box? Cargo types are kept.", func(ok bool) {
		if ok {
			a.sess.ClearAllInstances()
		}
	}, a.window)
}

// nudge moves the selection by a pixel delta in the last used view.
func (a *App) nudge(dx, dy float64) {
	if len(a.sess.Selection()) == 0 {
		return
	}
	if !a.sess.MoveSelected(a.lastView, dx, dy) {
		a.flash("Blocked")
	}
}

// ─── Keyboard ──────────────────────────────────────────────

var (
	shortcutUndo  = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutRedo  = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutCopy  = &desktop.CustomShortcut{KeyName: fyne.KeyC, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutPaste = &desktop.CustomShortcut{KeyName: fyne.KeyV, Modifier: fyne.KeyModifierShortcutDefault}
)

// SetupShortcuts registers the canvas-level keyboard bindings.
func (a *App) SetupShortcuts() {
	c := a.window.Canvas()
	c.AddShortcut(shortcutUndo, func(fyne.Shortcut) { a.undo() })
	c.AddShortcut(shortcutRedo, func(fyne.Shortcut) { a.redo() })
	c.AddShortcut(shortcutCopy, func(fyne.Shortcut) { a.copySelection() })
	c.AddShortcut(shortcutPaste, func(fyne.Shortcut) { a.paste() })

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyR:
			a.rotateSelection()
		case fyne.KeyDelete, fyne.KeyBackspace:
			a.deleteSelection()
		case fyne.KeyEscape:
			a.sess.ClearSelection()
		case fyne.KeyLeft:
			a.nudge(-1, 0)
		case fyne.KeyRight:
			a.nudge(1, 0)
		case fyne.KeyUp:
			a.nudge(0, -1)
		case fyne.KeyDown:
			a.nudge(0, 1)
		}
	})
}
