package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"IshiGrid/internal/config"
	"IshiGrid/internal/grid"
	"IshiGrid/internal/state"
)

// Editor is the desktop editor: drawing surface plus command panel.
type Editor struct {
	Session *state.Session
	Grid    *GridWidget
	Toolbar *Toolbar
	Content fyne.CanvasObject
}

// NewEditor builds the editor widgets for session. exportFn is called with
// the chosen format when the user exports.
func NewEditor(session *state.Session, cfg config.Config, exportFn func(format string)) *Editor {
	e := &Editor{Session: session}
	e.Grid = NewGridWidget(session, cfg.Window.Width)
	e.Toolbar = NewToolbar(session, cfg.Export.Format, exportFn, func() {
		e.Grid.Refresh()
		e.Toolbar.Sync()
	})
	e.Grid.OnPick = func(_ grid.Point, action state.Action) {
		e.Toolbar.PickStatus(action)
		e.Toolbar.Sync()
	}
	e.Content = container.NewBorder(nil, nil, e.Toolbar.Panel(), nil, container.NewCenter(e.Grid))
	return e
}

// RunApp opens the editor window and blocks until it is closed.
func RunApp(cfg config.Config) {
	a := app.New()
	win := a.NewWindow("ISHI(14) GRID")

	session := state.NewSession(state.WithHistoryLimit(cfg.Editor.HistoryLimit))
	var editor *Editor
	editor = NewEditor(session, cfg, func(format string) {
		ShowExport(win, session, cfg, format, editor.Toolbar.Status.SetText)
	})

	win.SetContent(editor.Content)
	win.Resize(fyne.NewSize(cfg.Window.Width+320, cfg.Window.Width*grid.Rows/grid.Cols+80))
	win.ShowAndRun()
}
