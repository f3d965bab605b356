// Package review reconstructs closed trades from the labeled folders for
// read-only playback. It uses the same first-fit ascending pairing as the
// labeling session; entries without a later exit are open trades and are
// dropped from this view.
package review

import (
	"path/filepath"
	"sort"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
	"github.com/imalkevich/candle-to-screenshot/internal/session"
)

// Trade is one closed entry/exit pair ready for display.
type Trade struct {
	Side       model.Side
	EntryPath  string
	ExitPath   string
	EntryIndex int
	ExitIndex  int
}

// Result computes the per-trade P&L from bar closes using the same sign
// convention as the labeling session.
func (t *Trade) Result(bars []model.Bar) float64 {
	entry := closeAt(bars, t.EntryIndex)
	exit := closeAt(bars, t.ExitIndex)
	if t.Side == model.SideShort {
		return entry - exit
	}
	return exit - entry
}

func closeAt(bars []model.Bar, index int) float64 {
	if index < 1 || index > len(bars) {
		return 0
	}
	return bars[index-1].Close
}

// Reconstruct pairs the labeled folders into a chronologically ordered
// list of closed trades.
func Reconstruct(folders session.Folders) ([]Trade, error) {
	var trades []Trade
	for _, side := range []model.Side{model.SideLong, model.SideShort} {
		entryDir := folders.Dir(model.EntryCategory(side))
		exitDir := folders.Dir(model.ExitCategory(side))

		entries, err := folders.List(model.EntryCategory(side))
		if err != nil {
			return nil, err
		}
		exits, err := folders.List(model.ExitCategory(side))
		if err != nil {
			return nil, err
		}

		closed, _ := session.PairScreenshots(side, entries, exits)
		for _, p := range closed {
			trades = append(trades, Trade{
				Side:       side,
				EntryPath:  filepath.Join(entryDir, p.EntryName),
				ExitPath:   filepath.Join(exitDir, p.ExitName),
				EntryIndex: p.EntryIndex,
				ExitIndex:  p.ExitIndex,
			})
		}
	}
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].EntryIndex < trades[j].EntryIndex
	})
	return trades, nil
}

// Cursor steps through reconstructed trades with bounds clamping: moving
// past either end is a no-op.
type Cursor struct {
	trades []Trade
	pos    int
}

func NewCursor(trades []Trade) *Cursor {
	return &Cursor{trades: trades}
}

// Current returns the trade under the cursor.
func (c *Cursor) Current() (Trade, bool) {
	if c.pos < 0 || c.pos >= len(c.trades) {
		return Trade{}, false
	}
	return c.trades[c.pos], true
}

// Position returns the zero-based cursor position and the trade count.
func (c *Cursor) Position() (int, int) { return c.pos, len(c.trades) }

// Next advances to the following trade; no-op at the last one.
func (c *Cursor) Next() bool {
	if c.pos >= len(c.trades)-1 {
		return false
	}
	c.pos++
	return true
}

// Prev steps back to the preceding trade; no-op at the first one.
func (c *Cursor) Prev() bool {
	if c.pos <= 0 {
		return false
	}
	c.pos--
	return true
}
