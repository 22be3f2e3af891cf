package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"IshiGrid/internal/export"
	"IshiGrid/internal/state"
)

// Toolbar holds the editor commands. Undo and Reset are enabled only while
// there is something to undo.
type Toolbar struct {
	Undo   *widget.Button
	Reset  *widget.Button
	Export *widget.Button
	Format *widget.Select
	Status *widget.Label

	session *state.Session
}

// NewToolbar wires the command buttons to session. onExport runs with the
// selected format when Export is pressed; onChange runs after Undo/Reset.
func NewToolbar(session *state.Session, format string, onExport func(format string), onChange func()) *Toolbar {
	tb := &Toolbar{session: session, Status: widget.NewLabel("Click an intersection to start a shape.")}

	tb.Undo = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), func() {
		result, err := session.Undo()
		if err != nil {
			return
		}
		tb.Status.SetText(undoStatus(result))
		onChange()
	})
	tb.Reset = widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), func() {
		session.Reset()
		tb.Status.SetText("Cleared.")
		onChange()
	})
	tb.Format = widget.NewSelect(export.Formats(), nil)
	tb.Format.SetSelected(format)
	tb.Export = widget.NewButtonWithIcon("Export", theme.DownloadIcon(), func() {
		onExport(tb.Format.Selected)
	})
	tb.Sync()
	return tb
}

// Sync enables or disables the commands for the current session state.
func (tb *Toolbar) Sync() {
	if tb.session.CanUndo() {
		tb.Undo.Enable()
	} else {
		tb.Undo.Disable()
	}
	if tb.session.CanReset() {
		tb.Reset.Enable()
	} else {
		tb.Reset.Disable()
	}
}

// PickStatus describes a pick for the status line.
func (tb *Toolbar) PickStatus(action state.Action) {
	switch action {
	case state.Started:
		tb.Status.SetText("Path started.")
	case state.Appended:
		if tb.session.Snapshot().CanClose {
			tb.Status.SetText("Click the start point to close the shape.")
		} else {
			tb.Status.SetText("Vertex added.")
		}
	case state.Closed:
		tb.Status.SetText("Shape completed.")
	case state.Ignored:
		tb.Status.SetText("A shape needs at least 3 points.")
	}
}

func undoStatus(result state.UndoResult) string {
	if result == state.UndoRemovedShape {
		return "Removed the last shape."
	}
	return "Removed the last point."
}

// Panel lays the toolbar out as the side panel of the window.
func (tb *Toolbar) Panel() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("ISHI(14) GRID", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	help := widget.NewLabel("Click grid intersections to build a path.\nClick the start point again to close it.\nDraw as many shapes as you like.")
	return container.NewVBox(
		title,
		tb.Undo,
		tb.Reset,
		container.NewBorder(nil, nil, widget.NewLabel("Format:"), nil, tb.Format),
		tb.Export,
		widget.NewSeparator(),
		tb.Status,
		layout.NewSpacer(),
		help,
	)
}
