package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

// ForexFetcher implements Fetcher against a forex candle REST API. It is
// the alternate data source for pairs Binance does not list.
type ForexFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewForexFetcher creates a new fetcher with optional proxy support.
func NewForexFetcher(baseURL, apiKey, proxyURL string) *ForexFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ForexFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *ForexFetcher) Name() string { return "forex" }

// forexBar is the expected JSON shape from the forex API.
type forexBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *ForexFetcher) Fetch(ctx context.Context, ticker, interval, span string) ([]model.Bar, error) {
	if !supportedIntervals[interval] {
		return nil, fmt.Errorf("interval %q not supported", interval)
	}
	dur, err := ParseSpan(span)
	if err != nil {
		return nil, err
	}
	end := time.Now().UTC()
	start := end.Add(-dur)

	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("interval", interval)
	q.Set("from", fmt.Sprintf("%d", start.Unix()))
	q.Set("to", fmt.Sprintf("%d", end.Unix()))
	endpoint := fmt.Sprintf("%s/api/v1/candles?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch forex candles: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch forex candles: status %d, body: %s", resp.StatusCode, string(body))
	}

	var raw []forexBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode forex candles: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("forex source returned no rows for symbol %q", ticker)
	}

	step, _ := intervalDuration(interval)
	bars := make([]model.Bar, len(raw))
	for i, fb := range raw {
		open := time.Unix(fb.Timestamp, 0).UTC()
		bars[i] = model.Bar{
			OpenTime:  open,
			Open:      fb.Open,
			High:      fb.High,
			Low:       fb.Low,
			Close:     fb.Close,
			Volume:    fb.Volume,
			CloseTime: open.Add(step - time.Millisecond),
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].OpenTime.Before(bars[j].OpenTime) })
	return bars, nil
}

// intervalDuration maps a Binance-style interval string to its duration.
func intervalDuration(interval string) (time.Duration, error) {
	switch interval {
	case "1m":
		return time.Minute, nil
	case "3m":
		return 3 * time.Minute, nil
	case "5m":
		return 5 * time.Minute, nil
	case "15m":
		return 15 * time.Minute, nil
	case "30m":
		return 30 * time.Minute, nil
	case "1h":
		return time.Hour, nil
	case "2h":
		return 2 * time.Hour, nil
	case "4h":
		return 4 * time.Hour, nil
	case "6h":
		return 6 * time.Hour, nil
	case "8h":
		return 8 * time.Hour, nil
	case "12h":
		return 12 * time.Hour, nil
	case "1d":
		return 24 * time.Hour, nil
	case "3d":
		return 72 * time.Hour, nil
	case "1w":
		return 7 * 24 * time.Hour, nil
	case "1M":
		return 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("interval %q not supported", interval)
	}
}
