// Package dataset persists OHLCV bars to CSV files keyed by
// (ticker, interval, time span) and loads them back for rendering and
// labeling.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/imalkevich/candle-to-screenshot/internal/config"
	"github.com/imalkevich/candle-to-screenshot/internal/fetcher"
	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// header is the canonical CSV column layout (Binance kline order).
var header = []string{
	"open_time", "open", "high", "low", "close", "volume",
	"close_time", "quote_asset_volume", "number_of_trades",
	"taker_buy_base_asset_volume", "taker_buy_quote_asset_volume", "ignore",
}

// Path returns the CSV location for a dataset. A non-empty suffix marks
// alternate-source downloads, e.g. "forex".
func Path(cfg *config.Config, ds model.Dataset, suffix string) string {
	name := ds.Name()
	if suffix != "" {
		name += "_" + suffix
	}
	return filepath.Join(cfg.Dirs.Data, name+".csv")
}

// Write persists bars to the CSV path, creating parent directories.
func Write(path string, bars []model.Bar) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, b := range bars {
		rec := []string{
			b.OpenTime.Format(timeLayout),
			formatFloat(b.Open),
			formatFloat(b.High),
			formatFloat(b.Low),
			formatFloat(b.Close),
			formatFloat(b.Volume),
			b.CloseTime.Format(timeLayout),
			formatFloat(b.QuoteAssetVolume),
			strconv.FormatInt(b.NumberOfTrades, 10),
			formatFloat(b.TakerBuyBaseAssetVolume),
			formatFloat(b.TakerBuyQuoteAssetVolume),
			"0",
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Read loads bars from a CSV file. Missing required columns are a fatal
// validation error.
func Read(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s is empty", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, required := range []string{"open_time", "open", "high", "low", "close"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv missing %q column", required)
		}
	}

	bars := make([]model.Bar, 0, len(records)-1)
	for i, rec := range records[1:] {
		bar, err := parseRecord(rec, col)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseRecord(rec []string, col map[string]int) (model.Bar, error) {
	get := func(name string) string {
		if i, ok := col[name]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}
	getFloat := func(name string) float64 {
		v, _ := strconv.ParseFloat(get(name), 64)
		return v
	}

	openTime, err := time.Parse(timeLayout, get("open_time"))
	if err != nil {
		return model.Bar{}, fmt.Errorf("parse open_time: %w", err)
	}
	var closeTime time.Time
	if v := get("close_time"); v != "" {
		if closeTime, err = time.Parse(timeLayout, v); err != nil {
			return model.Bar{}, fmt.Errorf("parse close_time: %w", err)
		}
	}
	trades, _ := strconv.ParseInt(get("number_of_trades"), 10, 64)

	return model.Bar{
		OpenTime:                 openTime,
		Open:                     getFloat("open"),
		High:                     getFloat("high"),
		Low:                      getFloat("low"),
		Close:                    getFloat("close"),
		Volume:                   getFloat("volume"),
		CloseTime:                closeTime,
		QuoteAssetVolume:         getFloat("quote_asset_volume"),
		NumberOfTrades:           trades,
		TakerBuyBaseAssetVolume:  getFloat("taker_buy_base_asset_volume"),
		TakerBuyQuoteAssetVolume: getFloat("taker_buy_quote_asset_volume"),
	}, nil
}

// Ensure returns bars for the dataset, reusing an existing CSV unless
// refresh is set; otherwise it fetches and persists first.
func Ensure(ctx context.Context, cfg *config.Config, f fetcher.Fetcher, ds model.Dataset, refresh bool) ([]model.Bar, error) {
	suffix := ""
	if f.Name() != "binance" {
		suffix = f.Name()
	}
	path := Path(cfg, ds, suffix)

	if !refresh {
		if _, err := os.Stat(path); err == nil {
			log.Printf("[INFO] using existing data file: %s", path)
			return Read(path)
		}
	}

	log.Printf("[INFO] fetching %s %s %s from %s", ds.Ticker, ds.Interval, ds.Span, f.Name())
	bars, err := f.Fetch(ctx, ds.Ticker, ds.Interval, ds.Span)
	if err != nil {
		return nil, err
	}
	if err := Write(path, bars); err != nil {
		return nil, err
	}
	log.Printf("[INFO] saved OHLC data to %s", path)
	return bars, nil
}
