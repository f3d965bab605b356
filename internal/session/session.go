// Package session implements the labeling state machine: it walks the
// screenshot sequence, copies each image into the chosen category folder,
// maintains the open position and trade ledger, and supports single-step
// undo. All state is re-derivable from the processed folders.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/imalkevich/candle-to-screenshot/internal/journal"
	"github.com/imalkevich/candle-to-screenshot/internal/model"
	"github.com/imalkevich/candle-to-screenshot/internal/stats"
)

var (
	// ErrPositionOpen is returned when opening while a position exists.
	ErrPositionOpen = errors.New("a position is already open")
	// ErrNoPosition is returned when closing while flat.
	ErrNoPosition = errors.New("no open position")
	// ErrDone is returned when acting past the last screenshot.
	ErrDone = errors.New("all screenshots labeled")
)

type actionKind int

const (
	actionOpen actionKind = iota
	actionClose
	actionSkip
)

// action is one reversible forward step on the undo stack.
type action struct {
	kind   actionKind
	side   model.Side
	target string // copied file, deleted on undo
}

// Session drives one labeling run over a screenshot sequence.
type Session struct {
	mu sync.Mutex

	folders     Folders
	screenshots []string // full paths, sorted by filename
	bars        []model.Bar
	journal     journal.Journal

	cursor   int        // index into screenshots
	openSide model.Side // "" when flat
	trades   []model.Trade
	history  []action
}

// New creates a session over the given screenshot paths (sorted by name)
// and the bar series they were rendered from. The journal may be nil.
func New(folders Folders, screenshots []string, bars []model.Bar, jnl journal.Journal) *Session {
	if jnl == nil {
		jnl = journal.NewNoopJournal()
	}
	return &Session{
		folders:     folders,
		screenshots: screenshots,
		bars:        bars,
		journal:     jnl,
	}
}

// Cursor returns the zero-based position in the screenshot sequence.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Total returns the number of screenshots in the run.
func (s *Session) Total() int { return len(s.screenshots) }

// Done reports whether every screenshot has been labeled.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor >= len(s.screenshots)
}

// Current returns the path of the screenshot under the cursor.
func (s *Session) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < 0 || s.cursor >= len(s.screenshots) {
		return "", false
	}
	return s.screenshots[s.cursor], true
}

// OpenSide returns the side of the open position, or "" when flat.
func (s *Session) OpenSide() model.Side {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openSide
}

// Trades returns a copy of the ledger, chronological by entry.
func (s *Session) Trades() []model.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Trade, len(s.trades))
	copy(out, s.trades)
	return out
}

// Stats recomputes the session statistics from the ledger.
func (s *Session) Stats() stats.Summary {
	return stats.Compute(s.Trades())
}

// OpenLong opens a long position on the current screenshot.
func (s *Session) OpenLong() error { return s.open(model.SideLong) }

// OpenShort opens a short position on the current screenshot.
func (s *Session) OpenShort() error { return s.open(model.SideShort) }

func (s *Session) open(side model.Side) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.openSide != "" {
		return ErrPositionOpen
	}
	src, idx, err := s.currentLocked()
	if err != nil {
		return err
	}

	category := model.EntryCategory(side)
	target, err := s.copyLocked(src, category)
	if err != nil {
		return err
	}

	s.trades = append(s.trades, model.Trade{
		Side:       side,
		EntryIndex: idx,
		EntryPrice: s.closePrice(idx),
	})
	s.openSide = side
	s.history = append(s.history, action{kind: actionOpen, side: side, target: target})
	s.recordLabel(src, category, idx)
	s.cursor++
	return nil
}

// CloseTrade closes the open position on the current screenshot.
func (s *Session) CloseTrade() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.openSide == "" {
		return ErrNoPosition
	}
	src, idx, err := s.currentLocked()
	if err != nil {
		return err
	}

	side := s.openSide
	category := model.ExitCategory(side)
	target, err := s.copyLocked(src, category)
	if err != nil {
		return err
	}

	trade := s.lastOpenTrade()
	trade.ExitIndex = idx
	trade.ExitPrice = s.closePrice(idx)
	s.openSide = ""
	s.history = append(s.history, action{kind: actionClose, side: side, target: target})
	s.recordLabel(src, category, idx)
	if err := s.journal.RecordTrade(trade); err != nil {
		log.Printf("[WARN] journal trade: %v", err)
	}
	s.cursor++
	return nil
}

// Skip labels the current screenshot as normal. Allowed in any state and
// never touches the trade bookkeeping.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, idx, err := s.currentLocked()
	if err != nil {
		return err
	}
	target, err := s.copyLocked(src, model.CategoryNormal)
	if err != nil {
		return err
	}
	s.history = append(s.history, action{kind: actionSkip, target: target})
	s.recordLabel(src, model.CategoryNormal, idx)
	s.cursor++
	return nil
}

// Undo reverses the most recent forward action: it deletes the copied
// file, reverts the ledger and open position, and steps the cursor back.
// Returns false when there is nothing to undo.
func (s *Session) Undo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return false, nil
	}
	last := s.history[len(s.history)-1]

	if err := os.Remove(last.target); err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("remove %s: %w", filepath.Base(last.target), err)
	}

	switch last.kind {
	case actionOpen:
		// Drop the unmatched entry.
		s.trades = s.trades[:len(s.trades)-1]
		s.openSide = ""
	case actionClose:
		// Reopen the most recently closed trade.
		if t := s.lastClosedTrade(); t != nil {
			t.ExitIndex = 0
			t.ExitPrice = 0
		}
		s.openSide = last.side
	}

	s.history = s.history[:len(s.history)-1]
	if s.cursor > 0 {
		s.cursor--
	}
	return true, nil
}

func (s *Session) currentLocked() (string, int, error) {
	if s.cursor >= len(s.screenshots) {
		return "", 0, ErrDone
	}
	src := s.screenshots[s.cursor]
	return src, model.ScreenshotIndex(filepath.Base(src)), nil
}

// copyLocked copies the screenshot into the category folder, preserving
// the filename. The action is only recorded if the copy succeeds.
func (s *Session) copyLocked(src string, c model.Category) (string, error) {
	target := filepath.Join(s.folders.Dir(c), filepath.Base(src))
	if err := copyFile(src, target); err != nil {
		return "", fmt.Errorf("copy %s to %s: %w", filepath.Base(src), c, err)
	}
	return target, nil
}

func (s *Session) recordLabel(src string, c model.Category, idx int) {
	evt := &model.LabelEvent{
		Screenshot: filepath.Base(src),
		Category:   c,
		BarIndex:   idx,
		At:         time.Now(),
	}
	if err := s.journal.RecordLabel(evt); err != nil {
		log.Printf("[WARN] journal label: %v", err)
	}
}

// closePrice returns the close of the bar behind a 1-based screenshot index.
func (s *Session) closePrice(index int) float64 {
	if index < 1 || index > len(s.bars) {
		return 0
	}
	return s.bars[index-1].Close
}

func (s *Session) lastOpenTrade() *model.Trade {
	for i := len(s.trades) - 1; i >= 0; i-- {
		if !s.trades[i].Closed() {
			return &s.trades[i]
		}
	}
	return nil
}

func (s *Session) lastClosedTrade() *model.Trade {
	for i := len(s.trades) - 1; i >= 0; i-- {
		if s.trades[i].Closed() {
			return &s.trades[i]
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
