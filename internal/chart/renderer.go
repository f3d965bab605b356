// Package chart renders sliding-window candlestick images for ML
// consumption: candle bodies and wicks only, no axes or labels.
package chart

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

const (
	imageWidth  = 640
	imageHeight = 480
	margin      = 8.0
)

// Options control one render pass.
type Options struct {
	Skip   int  // initial candles excluded from screenshot generation
	Window int  // max candles shown per screenshot
	Fresh  bool // remove and recreate the output folder first
}

// Renderer writes one PNG per bar index into a dataset's screenshot folder.
type Renderer struct {
	OutDir string
}

// NewRenderer creates a renderer for the dataset's screenshot folder.
func NewRenderer(screenshotsRoot string, ds model.Dataset) *Renderer {
	return &Renderer{OutDir: filepath.Join(screenshotsRoot, ds.Name())}
}

// Render produces one image per index from skip+1 through the end of the
// series, each showing the trailing window of bars ending at that index.
// Indices whose output file already exists are skipped, so incremental
// re-runs only fill gaps.
func (r *Renderer) Render(bars []model.Bar, opts Options) error {
	if opts.Fresh {
		if err := os.RemoveAll(r.OutDir); err != nil {
			log.Printf("[WARN] could not fully remove existing folder %s: %v", r.OutDir, err)
		} else {
			log.Printf("[INFO] cleaned existing folder: %s", r.OutDir)
		}
	}
	if err := os.MkdirAll(r.OutDir, 0755); err != nil {
		return fmt.Errorf("create screenshot dir: %w", err)
	}

	total := len(bars)
	if total <= opts.Skip {
		log.Printf("[WARN] not enough candles (%d) to start after skip=%d, no screenshots created", total, opts.Skip)
		return nil
	}

	log.Printf("[INFO] generating %d screenshots (skipping first %d of %d candles)", total-opts.Skip, opts.Skip, total)
	saved := 0
	for i := opts.Skip + 1; i <= total; i++ {
		out := filepath.Join(r.OutDir, model.ScreenshotName(i))
		if _, err := os.Stat(out); err == nil {
			continue
		}
		start := i - opts.Window
		if start < 0 {
			start = 0
		}
		if err := renderWindow(bars[start:i], out); err != nil {
			return fmt.Errorf("render candle %d: %w", i, err)
		}
		saved++
		if saved%100 == 0 {
			log.Printf("[INFO] saved %d/%d -> %s", i-opts.Skip, total-opts.Skip, out)
		}
	}
	log.Printf("[INFO] screenshots saved under %s", r.OutDir)
	return nil
}

func renderWindow(window []model.Bar, path string) error {
	low, high := math.Inf(1), math.Inf(-1)
	for _, b := range window {
		if b.Low < low {
			low = b.Low
		}
		if b.High > high {
			high = b.High
		}
	}
	if high <= low {
		high = low + 1
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Price to pixel: high at the top margin, low at the bottom.
	span := high - low
	y := func(price float64) float64 {
		return margin + (high-price)/span*(imageHeight-2*margin)
	}

	slot := (imageWidth - 2*margin) / float64(len(window))
	bodyWidth := slot * 0.7

	for i, b := range window {
		cx := margin + (float64(i)+0.5)*slot

		up := b.Close >= b.Open
		if up {
			dc.SetRGB(0.18, 0.60, 0.25)
		} else {
			dc.SetRGB(0.78, 0.16, 0.16)
		}

		// Wick
		dc.SetLineWidth(1)
		dc.DrawLine(cx, y(b.High), cx, y(b.Low))
		dc.Stroke()

		// Body; degenerate bodies get a minimum height so the candle stays visible.
		top := y(math.Max(b.Open, b.Close))
		bottom := y(math.Min(b.Open, b.Close))
		if bottom-top < 1 {
			bottom = top + 1
		}
		dc.DrawRectangle(cx-bodyWidth/2, top, bodyWidth, bottom-top)
		dc.Fill()
	}

	return dc.SavePNG(path)
}
