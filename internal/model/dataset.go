package model

import (
	"fmt"
	"regexp"
	"strings"
)

var spanWhitespace = regexp.MustCompile(`\s+`)

// Dataset identifies one (ticker, interval, time span) download and every
// artifact derived from it: the CSV file, the screenshot folder and the
// processed folder all share its Name.
type Dataset struct {
	Ticker   string
	Interval string
	Span     string // human readable, e.g. "1 month"
}

// Name returns the canonical artifact name, e.g. "BTCUSDT_15m_1month".
func (d Dataset) Name() string {
	span := spanWhitespace.ReplaceAllString(strings.ToLower(d.Span), "")
	return fmt.Sprintf("%s_%s_%s", strings.ToUpper(d.Ticker), d.Interval, span)
}

// ScreenshotName returns the filename for the screenshot ending at the
// given 1-based bar index.
func ScreenshotName(index int) string {
	return fmt.Sprintf("candle_%05d.png", index)
}

var screenshotIndex = regexp.MustCompile(`(\d+)`)

// ScreenshotIndex extracts the 1-based bar index embedded in a screenshot
// filename. Returns 0 when the name carries no number.
func ScreenshotIndex(name string) int {
	m := screenshotIndex.FindString(name)
	if m == "" {
		return 0
	}
	var idx int
	fmt.Sscanf(m, "%d", &idx)
	return idx
}
