package stats

import (
	"math"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

// Summary holds statistics derived from a trade ledger. Open trades are
// excluded from every number.
type Summary struct {
	Closed       int
	Wins         int
	Losses       int
	NetPL        float64
	GrossProfit  float64
	GrossLoss    float64 // absolute value
	ProfitFactor float64 // +Inf when wins and no losses, 0 otherwise degenerate
}

// Compute derives a Summary from the ledger.
func Compute(trades []model.Trade) Summary {
	var s Summary
	for i := range trades {
		t := &trades[i]
		if !t.Closed() {
			continue
		}
		s.Closed++
		result := t.Result()
		s.NetPL += result
		switch {
		case result > 0:
			s.Wins++
			s.GrossProfit += result
		case result < 0:
			s.Losses++
			s.GrossLoss += -result
		}
	}
	s.ProfitFactor = profitFactor(s)
	return s
}

func profitFactor(s Summary) float64 {
	if s.GrossLoss > 0 {
		return s.GrossProfit / s.GrossLoss
	}
	if s.Wins > 0 {
		return math.Inf(1)
	}
	return 0
}
