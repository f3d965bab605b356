// Package ui contains the fyne shells for the two desktop tools. All
// domain logic lives in the session and review packages; this layer only
// wires widgets and key bindings to it.
package ui

import (
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/imalkevich/candle-to-screenshot/internal/session"
	"github.com/imalkevich/candle-to-screenshot/internal/stats"
)

type labelWindow struct {
	win  fyne.Window
	sess *session.Session

	img      *canvas.Image
	doneMsg  *widget.Label
	status   *widget.Label
	statsRow *widget.Label

	btnLong  *widget.Button
	btnShort *widget.Button
	btnClose *widget.Button
	btnSkip  *widget.Button
	btnUndo  *widget.Button
}

// RunLabeler opens the labeling window and blocks until it closes.
func RunLabeler(sess *session.Session) {
	a := app.New()
	w := a.NewWindow("Candlestick Labeling")

	lw := &labelWindow{win: w, sess: sess}

	lw.img = &canvas.Image{FillMode: canvas.ImageFillContain}
	lw.img.SetMinSize(fyne.NewSize(560, 480))
	lw.doneMsg = widget.NewLabel("All images labeled. You can close now.")
	lw.doneMsg.Hide()
	lw.status = widget.NewLabel("")
	lw.statsRow = widget.NewLabel("")

	lw.btnLong = widget.NewButton("Open Long", func() { lw.do(sess.OpenLong) })
	lw.btnShort = widget.NewButton("Open Short", func() { lw.do(sess.OpenShort) })
	lw.btnClose = widget.NewButton("Close", func() { lw.do(sess.CloseTrade) })
	lw.btnSkip = widget.NewButton("Skip (Normal)", func() { lw.do(sess.Skip) })
	lw.btnUndo = widget.NewButton("Undo", lw.undo)

	buttons := container.NewHBox(lw.btnLong, lw.btnShort, lw.btnClose, lw.btnSkip, lw.btnUndo)
	w.SetContent(container.NewVBox(lw.img, lw.doneMsg, lw.status, lw.statsRow, buttons))

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft:
			lw.do(sess.OpenLong)
		case fyne.KeyRight:
			lw.do(sess.OpenShort)
		case fyne.KeySpace:
			lw.do(sess.Skip)
		case fyne.KeyUp:
			lw.do(sess.CloseTrade)
		case fyne.KeyBackspace:
			lw.undo()
		case fyne.KeyEscape:
			a.Quit()
		}
	})

	lw.refresh()
	w.Resize(fyne.NewSize(600, 640))
	w.ShowAndRun()
}

// do runs a forward action. Rejected transitions are ignored silently
// (the disabled buttons already communicate them); copy failures pop a
// dialog and leave the session untouched.
func (lw *labelWindow) do(action func() error) {
	err := action()
	switch {
	case err == nil:
	case errors.Is(err, session.ErrPositionOpen), errors.Is(err, session.ErrNoPosition), errors.Is(err, session.ErrDone):
	default:
		dialog.ShowError(err, lw.win)
	}
	lw.refresh()
}

func (lw *labelWindow) undo() {
	undone, err := lw.sess.Undo()
	if err != nil {
		dialog.ShowError(err, lw.win)
	} else if !undone {
		lw.status.SetText("No action to undo.")
		return
	}
	lw.refresh()
}

func (lw *labelWindow) refresh() {
	current, ok := lw.sess.Current()
	if !ok {
		lw.img.Hide()
		lw.doneMsg.Show()
		lw.status.SetText(fmt.Sprintf("Done: %d/%d", lw.sess.Total(), lw.sess.Total()))
		lw.btnLong.Disable()
		lw.btnShort.Disable()
		lw.btnClose.Disable()
		lw.btnSkip.Disable()
	} else {
		lw.img.Show()
		lw.doneMsg.Hide()
		lw.img.File = current
		lw.img.Refresh()
		lw.status.SetText(fmt.Sprintf("Image %d/%d: %s", lw.sess.Cursor()+1, lw.sess.Total(), filepath.Base(current)))

		if lw.sess.OpenSide() == "" {
			lw.btnLong.Enable()
			lw.btnShort.Enable()
			lw.btnClose.Disable()
		} else {
			lw.btnLong.Disable()
			lw.btnShort.Disable()
			lw.btnClose.Enable()
		}
		lw.btnSkip.Enable()
	}
	lw.statsRow.SetText(stats.FormatLine(lw.sess.Stats()))
}
