package session

import (
	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

// PairedTrade is one closed entry/exit screenshot pair of a single side.
type PairedTrade struct {
	Side       model.Side
	EntryName  string
	ExitName   string
	EntryIndex int
	ExitIndex  int
}

// PairScreenshots matches entry files against exit files of the same side
// using first-fit ascending: each entry (in ascending index order) consumes
// the smallest unused exit with a strictly greater index. Entries left
// without an exit are returned as open.
//
// Inputs must be sorted by filename; both lists keep the original
// candle_NNNNN.png names.
func PairScreenshots(side model.Side, entries, exits []string) (closed []PairedTrade, open []string) {
	used := make([]bool, len(exits))
	for _, e := range entries {
		eIdx := model.ScreenshotIndex(e)
		matched := false
		for i, x := range exits {
			if used[i] {
				continue
			}
			xIdx := model.ScreenshotIndex(x)
			if xIdx > eIdx {
				used[i] = true
				closed = append(closed, PairedTrade{
					Side:       side,
					EntryName:  e,
					ExitName:   x,
					EntryIndex: eIdx,
					ExitIndex:  xIdx,
				})
				matched = true
				break
			}
		}
		if !matched {
			open = append(open, e)
		}
	}
	return closed, open
}
