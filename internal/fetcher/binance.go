package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

// supportedIntervals is the Binance kline interval allow-list.
var supportedIntervals = map[string]bool{
	"1m": true, "3m": true, "5m": true, "15m": true, "30m": true,
	"1h": true, "2h": true, "4h": true, "6h": true, "8h": true, "12h": true,
	"1d": true, "3d": true, "1w": true, "1M": true,
}

const binancePageLimit = 1000

// BinanceFetcher implements Fetcher using the Binance spot klines API.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a new fetcher with optional proxy support.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// Fetch downloads klines page by page until the requested span is covered.
// Each page is keyed by start time; the window advances one millisecond
// past the last open time, and a short page signals exhaustion.
func (f *BinanceFetcher) Fetch(ctx context.Context, ticker, interval, span string) ([]model.Bar, error) {
	if !supportedIntervals[interval] {
		return nil, fmt.Errorf("interval %q not supported", interval)
	}
	dur, err := ParseSpan(span)
	if err != nil {
		return nil, err
	}

	endTime := time.Now().UTC()
	startMs := endTime.Add(-dur).UnixMilli()
	endMs := endTime.UnixMilli()

	var bars []model.Bar
	for {
		page, err := f.fetchPage(ctx, ticker, interval, startMs, endMs)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		bars = append(bars, page...)
		if len(page) < binancePageLimit {
			break
		}
		startMs = page[len(page)-1].OpenTime.UnixMilli() + 1
	}

	log.Printf("[INFO] binance: fetched %s bars for %s %s", humanize.Comma(int64(len(bars))), ticker, interval)
	return bars, nil
}

func (f *BinanceFetcher) fetchPage(ctx context.Context, ticker, interval string, startMs, endMs int64) ([]model.Bar, error) {
	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("interval", interval)
	q.Set("startTime", strconv.FormatInt(startMs, 10))
	q.Set("endTime", strconv.FormatInt(endMs, 10))
	q.Set("limit", strconv.Itoa(binancePageLimit))
	endpoint := fmt.Sprintf("%s/api/v3/klines?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch klines: status %d, body: %s", resp.StatusCode, string(body))
	}

	// Binance returns each kline as a 12-element heterogeneous array.
	var raw [][]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}

	bars := make([]model.Bar, 0, len(raw))
	for _, row := range raw {
		bar, err := parseKline(row)
		if err != nil {
			return nil, fmt.Errorf("parse kline: %w", err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseKline(row []json.RawMessage) (model.Bar, error) {
	if len(row) < 11 {
		return model.Bar{}, fmt.Errorf("kline has %d fields, want at least 11", len(row))
	}
	var openMs, closeMs, trades int64
	if err := json.Unmarshal(row[0], &openMs); err != nil {
		return model.Bar{}, err
	}
	if err := json.Unmarshal(row[6], &closeMs); err != nil {
		return model.Bar{}, err
	}
	if err := json.Unmarshal(row[8], &trades); err != nil {
		return model.Bar{}, err
	}

	floats := make([]float64, 0, 7)
	for _, i := range []int{1, 2, 3, 4, 5, 7, 9} {
		var s string
		if err := json.Unmarshal(row[i], &s); err != nil {
			return model.Bar{}, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Bar{}, err
		}
		floats = append(floats, v)
	}
	var takerQuote float64
	if len(row) > 10 {
		var s string
		if err := json.Unmarshal(row[10], &s); err == nil {
			takerQuote, _ = strconv.ParseFloat(s, 64)
		}
	}

	return model.Bar{
		OpenTime:                 time.UnixMilli(openMs).UTC(),
		Open:                     floats[0],
		High:                     floats[1],
		Low:                      floats[2],
		Close:                    floats[3],
		Volume:                   floats[4],
		CloseTime:                time.UnixMilli(closeMs).UTC(),
		QuoteAssetVolume:         floats[5],
		NumberOfTrades:           trades,
		TakerBuyBaseAssetVolume:  floats[6],
		TakerBuyQuoteAssetVolume: takerQuote,
	}, nil
}
