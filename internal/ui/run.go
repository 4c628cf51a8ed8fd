package ui

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/LoadPlan/internal/cli"
)

// Run opens the desktop application and blocks until the window is closed
// or ctx is cancelled. It matches cli.GUILauncher.
func Run(ctx context.Context, opts cli.GUIOptions) error {
	application := app.NewWithID("com.piwi3910.loadplan")
	window := application.NewWindow("LoadPlan")

	a := NewApp(window, opts.Logger, opts.InventoryPath)
	application.Settings().SetTheme(NewLoadPlanTheme(a.config.Theme))

	a.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(a.Build(), window.Canvas()))
	a.SetupShortcuts()

	if opts.ProjectPath != "" {
		if err := a.openProject(opts.ProjectPath); err != nil {
			return err
		}
	}

	window.Resize(fyne.NewSize(1500, 900))
	window.CenterOnScreen()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(application.Quit)
		case <-done:
		}
	}()

	saveCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.autoSave(saveCtx)

	window.ShowAndRun()
	return nil
}

// autoSave periodically writes the open project back to its file. Projects
// that were never saved are skipped.
func (a *App) autoSave(ctx context.Context) {
	minutes := a.config.AutoSaveInterval
	if minutes <= 0 {
		return
	}
	ticker := time.NewTicker(time.Duration(minutes) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(func() {
				if a.projectPath == "" || a.sess.Dragging() {
					return
				}
				if err := a.writeProject(a.projectPath); err != nil {
					a.logger.Warn("auto-save failed", "err", err)
				}
			})
		}
	}
}
