package session

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

// barsSeq builds a series whose close at 1-based index i equals i, so
// expected trade results are easy to read off.
func barsSeq(n int) []model.Bar {
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{Open: float64(i), High: float64(i + 2), Low: float64(i), Close: float64(i + 1)}
	}
	return bars
}

// newTestSession lays out n fake screenshots and an empty processed tree.
func newTestSession(t *testing.T, n int) (*Session, Folders) {
	t.Helper()
	root := t.TempDir()
	shotDir := filepath.Join(root, "screenshots")
	if err := os.MkdirAll(shotDir, 0755); err != nil {
		t.Fatal(err)
	}
	paths := make([]string, n)
	for i := 1; i <= n; i++ {
		p := filepath.Join(shotDir, model.ScreenshotName(i))
		if err := os.WriteFile(p, []byte(fmt.Sprintf("png-%d", i)), 0644); err != nil {
			t.Fatal(err)
		}
		paths[i-1] = p
	}
	folders := NewFolders(filepath.Join(root, "processed"), model.Dataset{Ticker: "BTCUSDT", Interval: "15m", Span: "1 month"})
	if err := folders.Ensure(); err != nil {
		t.Fatal(err)
	}
	return New(folders, paths, barsSeq(n), nil), folders
}

func labeledNames(t *testing.T, f Folders, c model.Category) []string {
	t.Helper()
	names, err := f.List(c)
	if err != nil {
		t.Fatal(err)
	}
	return names
}

func TestOpenCloseFlow(t *testing.T) {
	s, folders := newTestSession(t, 5)

	if err := s.OpenLong(); err != nil {
		t.Fatalf("OpenLong: %v", err)
	}
	if s.OpenSide() != model.SideLong {
		t.Fatalf("open side = %q, want long", s.OpenSide())
	}
	if err := s.Skip(); err != nil {
		t.Fatalf("Skip while open: %v", err)
	}
	if err := s.CloseTrade(); err != nil {
		t.Fatalf("CloseTrade: %v", err)
	}
	if s.OpenSide() != "" {
		t.Fatalf("open side after close = %q, want flat", s.OpenSide())
	}
	if s.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", s.Cursor())
	}

	trades := s.Trades()
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	tr := trades[0]
	if tr.EntryIndex != 1 || tr.ExitIndex != 3 {
		t.Errorf("trade indices = %d->%d, want 1->3", tr.EntryIndex, tr.ExitIndex)
	}
	if tr.EntryPrice != 1 || tr.ExitPrice != 3 {
		t.Errorf("trade prices = %v->%v, want 1->3", tr.EntryPrice, tr.ExitPrice)
	}
	if tr.Result() != 2 {
		t.Errorf("result = %v, want 2", tr.Result())
	}

	if got := labeledNames(t, folders, model.CategoryBuy); len(got) != 1 || got[0] != "candle_00001.png" {
		t.Errorf("buy folder = %v", got)
	}
	if got := labeledNames(t, folders, model.CategoryNormal); len(got) != 1 || got[0] != "candle_00002.png" {
		t.Errorf("normal folder = %v", got)
	}
	if got := labeledNames(t, folders, model.CategoryBuyExit); len(got) != 1 || got[0] != "candle_00003.png" {
		t.Errorf("buy_exit folder = %v", got)
	}
}

func TestShortSignConvention(t *testing.T) {
	s, _ := newTestSession(t, 4)

	if err := s.OpenShort(); err != nil {
		t.Fatal(err)
	}
	if err := s.CloseTrade(); err != nil {
		t.Fatal(err)
	}
	tr := s.Trades()[0]
	// Short entered at close 1, exited at close 2: result = entry - exit = -1.
	if tr.Result() != -1 {
		t.Errorf("short result = %v, want -1", tr.Result())
	}
}

func TestOpenWhilePositionOpen(t *testing.T) {
	s, _ := newTestSession(t, 4)
	if err := s.OpenLong(); err != nil {
		t.Fatal(err)
	}
	if err := s.OpenShort(); err != ErrPositionOpen {
		t.Errorf("OpenShort while long = %v, want ErrPositionOpen", err)
	}
	if err := s.OpenLong(); err != ErrPositionOpen {
		t.Errorf("second OpenLong = %v, want ErrPositionOpen", err)
	}
	if s.Cursor() != 1 {
		t.Errorf("rejected action moved cursor to %d", s.Cursor())
	}
}

func TestCloseWhileFlat(t *testing.T) {
	s, _ := newTestSession(t, 4)
	if err := s.CloseTrade(); err != ErrNoPosition {
		t.Errorf("CloseTrade while flat = %v, want ErrNoPosition", err)
	}
}

// snapshot captures everything undo must restore.
type snapshot struct {
	cursor   int
	openSide model.Side
	trades   []model.Trade
	folders  map[model.Category][]string
}

func takeSnapshot(t *testing.T, s *Session, f Folders) snapshot {
	t.Helper()
	snap := snapshot{
		cursor:   s.Cursor(),
		openSide: s.OpenSide(),
		trades:   s.Trades(),
		folders:  make(map[model.Category][]string),
	}
	for _, c := range model.Categories {
		names := labeledNames(t, f, c)
		sort.Strings(names)
		snap.folders[c] = names
	}
	return snap
}

func TestUndoIsStrictInverse(t *testing.T) {
	cases := []struct {
		name string
		prep func(s *Session) error // establish pre-state
		act  func(s *Session) error // the action to undo
	}{
		{"open-long", nil, func(s *Session) error { return s.OpenLong() }},
		{"open-short", nil, func(s *Session) error { return s.OpenShort() }},
		{"exit", func(s *Session) error { return s.OpenLong() }, func(s *Session) error { return s.CloseTrade() }},
		{"skip", nil, func(s *Session) error { return s.Skip() }},
		{"skip-while-open", func(s *Session) error { return s.OpenShort() }, func(s *Session) error { return s.Skip() }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, folders := newTestSession(t, 6)
			if c.prep != nil {
				if err := c.prep(s); err != nil {
					t.Fatalf("prep: %v", err)
				}
			}
			before := takeSnapshot(t, s, folders)
			if err := c.act(s); err != nil {
				t.Fatalf("action: %v", err)
			}
			undone, err := s.Undo()
			if err != nil {
				t.Fatalf("Undo: %v", err)
			}
			if !undone {
				t.Fatal("Undo reported nothing to undo")
			}
			after := takeSnapshot(t, s, folders)
			if !reflect.DeepEqual(before, after) {
				t.Errorf("undo did not restore state:\nbefore: %+v\nafter:  %+v", before, after)
			}
		})
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	s, _ := newTestSession(t, 3)
	undone, err := s.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if undone {
		t.Error("Undo with empty history should be a no-op")
	}
}

func TestFailedCopyLeavesStateConsistent(t *testing.T) {
	s, _ := newTestSession(t, 3)
	// Delete the source screenshot so the copy fails.
	src, _ := s.Current()
	if err := os.Remove(src); err != nil {
		t.Fatal(err)
	}

	if err := s.OpenLong(); err == nil {
		t.Fatal("expected copy error")
	}
	if s.Cursor() != 0 {
		t.Errorf("failed action advanced cursor to %d", s.Cursor())
	}
	if s.OpenSide() != "" {
		t.Errorf("failed action opened a position")
	}
	if len(s.Trades()) != 0 {
		t.Errorf("failed action recorded a trade")
	}
	if undone, _ := s.Undo(); undone {
		t.Error("failed action must not reach the undo history")
	}
}

func TestAllLabeled(t *testing.T) {
	s, _ := newTestSession(t, 2)
	if err := s.Skip(); err != nil {
		t.Fatal(err)
	}
	if err := s.Skip(); err != nil {
		t.Fatal(err)
	}
	if !s.Done() {
		t.Error("session should be done")
	}
	if err := s.Skip(); err != ErrDone {
		t.Errorf("Skip past end = %v, want ErrDone", err)
	}
}
