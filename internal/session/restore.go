package session

import (
	"log"
	"path/filepath"
	"sort"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

// Restore rebuilds the session state by scanning the processed folders:
// the cursor resumes at the first unlabeled screenshot, the ledger is
// rebuilt with first-fit pairing, and an unmatched entry leaves its
// position open. The result is identical to the state an uninterrupted
// session would have reached.
//
// The undo history is not restored; undo never crosses a restart.
func (s *Session) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	labeled := make(map[string]bool)
	for _, c := range model.Categories {
		names, err := s.folders.List(c)
		if err != nil {
			return err
		}
		for _, name := range names {
			labeled[name] = true
		}
	}

	s.cursor = len(s.screenshots)
	for i, path := range s.screenshots {
		if !labeled[filepath.Base(path)] {
			s.cursor = i
			break
		}
	}

	s.trades = nil
	s.history = nil
	s.openSide = ""

	var openEntries = map[model.Side][]string{}
	for _, side := range []model.Side{model.SideLong, model.SideShort} {
		entries, err := s.folders.List(model.EntryCategory(side))
		if err != nil {
			return err
		}
		exits, err := s.folders.List(model.ExitCategory(side))
		if err != nil {
			return err
		}

		closed, open := PairScreenshots(side, entries, exits)
		for _, p := range closed {
			s.trades = append(s.trades, model.Trade{
				Side:       side,
				EntryIndex: p.EntryIndex,
				EntryPrice: s.closePrice(p.EntryIndex),
				ExitIndex:  p.ExitIndex,
				ExitPrice:  s.closePrice(p.ExitIndex),
			})
		}
		for _, name := range open {
			s.trades = append(s.trades, model.Trade{
				Side:       side,
				EntryIndex: model.ScreenshotIndex(name),
				EntryPrice: s.closePrice(model.ScreenshotIndex(name)),
			})
		}
		if len(open) > 1 {
			log.Printf("[WARN] %s has %d unmatched entries; a session should never hold more than one open %s position", model.EntryCategory(side), len(open), side)
		}
		openEntries[side] = open
	}

	sort.SliceStable(s.trades, func(i, j int) bool {
		return s.trades[i].EntryIndex < s.trades[j].EntryIndex
	})

	longOpen, shortOpen := openEntries[model.SideLong], openEntries[model.SideShort]
	switch {
	case len(longOpen) > 0 && len(shortOpen) > 0:
		// Folder contents violate the single-position invariant; resume
		// with the most recent unmatched entry.
		log.Printf("[WARN] both sides have unmatched entries, resuming with the latest one")
		if lastIndex(longOpen) > lastIndex(shortOpen) {
			s.openSide = model.SideLong
		} else {
			s.openSide = model.SideShort
		}
	case len(longOpen) > 0:
		s.openSide = model.SideLong
	case len(shortOpen) > 0:
		s.openSide = model.SideShort
	}

	log.Printf("[INFO] resumed session: cursor %d/%d, %d trades, open side %q",
		s.cursor, len(s.screenshots), len(s.trades), s.openSide)
	return nil
}

func lastIndex(names []string) int {
	if len(names) == 0 {
		return 0
	}
	return model.ScreenshotIndex(names[len(names)-1])
}
