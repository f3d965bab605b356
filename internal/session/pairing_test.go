package session

import (
	"testing"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

func names(indices ...int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = model.ScreenshotName(idx)
	}
	return out
}

func TestPairScreenshots_FirstFit(t *testing.T) {
	cases := []struct {
		name        string
		entries     []int
		exits       []int
		wantPairs   [][2]int
		wantOpen    []int
	}{
		{"simple", []int{10, 50}, []int{30, 70}, [][2]int{{10, 30}, {50, 70}}, nil},
		{"open tail", []int{10, 50}, []int{30}, [][2]int{{10, 30}}, []int{50}},
		{"no exits", []int{10}, nil, nil, []int{10}},
		{"exit before entry unused", []int{10}, []int{5, 12}, [][2]int{{10, 12}}, nil},
		{"first fit not nearest fit", []int{10, 11}, []int{12, 13}, [][2]int{{10, 12}, {11, 13}}, nil},
		{"empty", nil, []int{5}, nil, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			closed, open := PairScreenshots(model.SideLong, names(c.entries...), names(c.exits...))
			if len(closed) != len(c.wantPairs) {
				t.Fatalf("closed = %d pairs, want %d", len(closed), len(c.wantPairs))
			}
			for i, want := range c.wantPairs {
				if closed[i].EntryIndex != want[0] || closed[i].ExitIndex != want[1] {
					t.Errorf("pair %d = %d->%d, want %d->%d",
						i, closed[i].EntryIndex, closed[i].ExitIndex, want[0], want[1])
				}
			}
			if len(open) != len(c.wantOpen) {
				t.Fatalf("open = %v, want indices %v", open, c.wantOpen)
			}
			for i, idx := range c.wantOpen {
				if model.ScreenshotIndex(open[i]) != idx {
					t.Errorf("open %d = %s, want index %d", i, open[i], idx)
				}
			}
		})
	}
}

func TestPairScreenshots_ExitConsumedOnce(t *testing.T) {
	closed, open := PairScreenshots(model.SideShort, names(10, 20), names(30))
	if len(closed) != 1 || closed[0].EntryIndex != 10 {
		t.Fatalf("expected single pair 10->30, got %+v", closed)
	}
	if len(open) != 1 || model.ScreenshotIndex(open[0]) != 20 {
		t.Fatalf("expected entry 20 open, got %v", open)
	}
	if closed[0].Side != model.SideShort {
		t.Errorf("side = %q, want short", closed[0].Side)
	}
}
