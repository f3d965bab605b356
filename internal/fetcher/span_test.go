package fetcher

import (
	"testing"
	"time"
)

func TestParseSpan(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1 month", 30 * 24 * time.Hour},
		{"2 months", 60 * 24 * time.Hour},
		{"1 year", 365 * 24 * time.Hour},
		{"3 days", 72 * time.Hour},
		{"2 weeks", 14 * 24 * time.Hour},
		{"12 hours", 12 * time.Hour},
		{"30 min", 30 * time.Minute},
		{"45 minutes", 45 * time.Minute},
	}
	for _, c := range cases {
		got, err := ParseSpan(c.in)
		if err != nil {
			t.Errorf("ParseSpan(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSpan(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseSpan_Invalid(t *testing.T) {
	for _, in := range []string{"", "month", "1 fortnight", "x days", "-1 days", "1 2 3"} {
		if _, err := ParseSpan(in); err == nil {
			t.Errorf("ParseSpan(%q): expected error", in)
		}
	}
}
