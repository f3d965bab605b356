package fetcher

import (
	"context"
	"time"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

// Fetcher defines the interface for downloading OHLCV bars covering a
// human-readable time span ending now.
type Fetcher interface {
	Fetch(ctx context.Context, ticker, interval, span string) ([]model.Bar, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.Bar
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(_ context.Context, _, _, _ string) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars, nil
}

// GenerateBars produces a deterministic synthetic series for tests.
func GenerateBars(basePrice float64, count int, interval time.Duration) []model.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		open := start.Add(time.Duration(i) * interval)
		bars[i] = model.Bar{
			OpenTime:  open,
			Open:      p * 0.999,
			High:      p * 1.005,
			Low:       p * 0.995,
			Close:     p,
			Volume:    1000,
			CloseTime: open.Add(interval - time.Millisecond),
		}
	}
	return bars
}
