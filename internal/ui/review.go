package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
	"github.com/imalkevich/candle-to-screenshot/internal/review"
)

type reviewWindow struct {
	cursor *review.Cursor
	bars   []model.Bar

	left    *canvas.Image
	right   *canvas.Image
	header  *widget.Label
	details *widget.Label

	btnBack *widget.Button
	btnNext *widget.Button
}

// RunReviewer opens the trade playback window and blocks until it closes.
func RunReviewer(trades []review.Trade, bars []model.Bar) {
	a := app.New()
	w := a.NewWindow("Trade Screenshot Checker")

	rw := &reviewWindow{cursor: review.NewCursor(trades), bars: bars}

	rw.left = &canvas.Image{FillMode: canvas.ImageFillContain}
	rw.left.SetMinSize(fyne.NewSize(560, 480))
	rw.right = &canvas.Image{FillMode: canvas.ImageFillContain}
	rw.right.SetMinSize(fyne.NewSize(560, 480))
	rw.header = widget.NewLabel("")
	rw.details = widget.NewLabel("")

	rw.btnBack = widget.NewButton("Back", func() { rw.cursor.Prev(); rw.refresh() })
	rw.btnNext = widget.NewButton("Next", func() { rw.cursor.Next(); rw.refresh() })

	images := container.NewHBox(rw.left, rw.right)
	nav := container.NewHBox(rw.btnBack, rw.btnNext)
	w.SetContent(container.NewVBox(images, rw.header, rw.details, nav))

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft:
			rw.cursor.Prev()
			rw.refresh()
		case fyne.KeyRight:
			rw.cursor.Next()
			rw.refresh()
		case fyne.KeyEscape:
			a.Quit()
		}
	})

	rw.refresh()
	w.Resize(fyne.NewSize(1320, 700))
	w.ShowAndRun()
}

func (rw *reviewWindow) refresh() {
	trade, ok := rw.cursor.Current()
	if !ok {
		rw.header.SetText("No closed trades found.")
		rw.details.SetText("")
		rw.btnBack.Disable()
		rw.btnNext.Disable()
		return
	}

	rw.left.File = trade.EntryPath
	rw.left.Refresh()
	rw.right.File = trade.ExitPath
	rw.right.Refresh()

	pos, total := rw.cursor.Position()
	rw.header.SetText(fmt.Sprintf("Trade %d/%d  %s  %s -> %s",
		pos+1, total, strings.ToUpper(string(trade.Side)),
		filepath.Base(trade.EntryPath), filepath.Base(trade.ExitPath)))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Entry File: %s\n", filepath.Base(trade.EntryPath)))
	b.WriteString(fmt.Sprintf("Exit File:  %s\n", filepath.Base(trade.ExitPath)))
	b.WriteString(fmt.Sprintf("Entry Candle: %s\n", formatCandle(rw.bars, trade.EntryIndex)))
	b.WriteString(fmt.Sprintf("Exit Candle:  %s\n", formatCandle(rw.bars, trade.ExitIndex)))
	b.WriteString(fmt.Sprintf("Result: %.2f", trade.Result(rw.bars)))
	rw.details.SetText(b.String())

	if pos <= 0 {
		rw.btnBack.Disable()
	} else {
		rw.btnBack.Enable()
	}
	if pos >= total-1 {
		rw.btnNext.Disable()
	} else {
		rw.btnNext.Enable()
	}
}

func formatCandle(bars []model.Bar, index int) string {
	if index < 1 || index > len(bars) {
		return "-"
	}
	b := bars[index-1]
	return fmt.Sprintf("%s  O:%g H:%g L:%g C:%g V:%g",
		b.OpenTime.Format("2006-01-02 15:04"), b.Open, b.High, b.Low, b.Close, b.Volume)
}
