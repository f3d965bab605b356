package stats

import (
	"fmt"
	"math"
	"strings"
)

// FormatLine renders the one-line stats panel shown during labeling.
func FormatLine(s Summary) string {
	return fmt.Sprintf("Trades: %d  W/L: %d/%d  Net: %+.2f  PF: %s",
		s.Closed, s.Wins, s.Losses, s.NetPL, formatFactor(s.ProfitFactor))
}

// FormatSummary renders the session summary printed when a tool exits.
func FormatSummary(s Summary) string {
	var b strings.Builder
	b.WriteString("Session summary\n")
	b.WriteString(fmt.Sprintf("  closed trades: %d\n", s.Closed))
	b.WriteString(fmt.Sprintf("  wins/losses:   %d/%d\n", s.Wins, s.Losses))
	b.WriteString(fmt.Sprintf("  net P&L:       %+.2f\n", s.NetPL))
	b.WriteString(fmt.Sprintf("  gross profit:  %.2f\n", s.GrossProfit))
	b.WriteString(fmt.Sprintf("  gross loss:    %.2f\n", s.GrossLoss))
	b.WriteString(fmt.Sprintf("  profit factor: %s\n", formatFactor(s.ProfitFactor)))
	return b.String()
}

func formatFactor(pf float64) string {
	if math.IsInf(pf, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", pf)
}
