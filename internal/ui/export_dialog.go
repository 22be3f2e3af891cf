package ui

import (
	"errors"
	"fmt"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"IshiGrid/internal/config"
	"IshiGrid/internal/export"
	"IshiGrid/internal/state"
)

// NothingToExportMessage is the blocking notice for an empty export.
const NothingToExportMessage = "There are no shapes to export."

// PrepareExport encodes the session in format. It returns
// export.ErrNothingToExport before encoding anything when no shape is
// eligible.
func PrepareExport(session *state.Session, cfg config.Config, format string) (*export.Result, error) {
	return export.Render(session.Snapshot(), format, cfg.Export.Basename, cfg.ExportOptions()...)
}

// ShowExport runs the export flow: a notice when there is nothing to
// export, otherwise a save dialog for the encoded file.
func ShowExport(win fyne.Window, session *state.Session, cfg config.Config, format string, status func(string)) {
	res, err := PrepareExport(session, cfg, format)
	if errors.Is(err, export.ErrNothingToExport) {
		dialog.ShowInformation("Export", NothingToExportMessage, win)
		return
	}
	if err != nil {
		dialog.ShowError(err, win)
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return // cancelled
		}
		if err := SaveToFile(writer, res); err != nil {
			log.Printf("SaveToFile: %v", err)
			dialog.ShowError(err, win)
			return
		}
		status(fmt.Sprintf("Saved %s", writer.URI().Name()))
	}, win)
	save.SetFileName(res.Filename)
	save.Show()
}

// SaveToFile writes an encoded export and closes the writer.
func SaveToFile(writer io.WriteCloser, res *export.Result) (err error) {
	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", res.Filename, cerr)
		}
	}()
	if _, err := writer.Write(res.Data); err != nil {
		return fmt.Errorf("writing %s: %w", res.Filename, err)
	}
	log.Printf("SaveToFile: wrote %d bytes of %s", len(res.Data), res.MIME)
	return nil
}
