package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/imalkevich/candle-to-screenshot/internal/config"
	"github.com/imalkevich/candle-to-screenshot/internal/fetcher"
	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Dirs.Data = t.TempDir()
	return cfg
}

func TestPathNaming(t *testing.T) {
	cfg := &config.Config{}
	cfg.Dirs.Data = "data"
	ds := model.Dataset{Ticker: "btcusdt", Interval: "15m", Span: "1 Month"}

	got := Path(cfg, ds, "")
	want := filepath.Join("data", "BTCUSDT_15m_1month.csv")
	if got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}

	got = Path(cfg, ds, "forex")
	want = filepath.Join("data", "BTCUSDT_15m_1month_forex.csv")
	if got != want {
		t.Errorf("Path with suffix = %q, want %q", got, want)
	}
}

func TestWriteRead(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.Dirs.Data, "BTCUSDT_15m_1month.csv")

	in := []model.Bar{
		{
			OpenTime:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Open:           100, High: 101.5, Low: 99.25, Close: 100.75, Volume: 12.5,
			CloseTime:      time.Date(2024, 3, 1, 0, 15, 0, 0, time.UTC),
			NumberOfTrades: 42,
		},
		{
			OpenTime: time.Date(2024, 3, 1, 0, 15, 0, 0, time.UTC),
			Open:     100.75, High: 102, Low: 100.5, Close: 101, Volume: 8,
		},
	}
	if err := Write(path, in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(out))
	}
	if out[0].Close != 100.75 || out[0].NumberOfTrades != 42 {
		t.Errorf("bar 0 mismatch: %+v", out[0])
	}
	if !out[0].OpenTime.Equal(in[0].OpenTime) {
		t.Errorf("open_time mismatch: %v != %v", out[0].OpenTime, in[0].OpenTime)
	}
}

func TestRead_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	content := "open,high,low,close\n100,101,99,100.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("expected error for missing open_time column")
	}
}

func TestEnsure_UsesExistingFile(t *testing.T) {
	cfg := testConfig(t)
	ds := model.Dataset{Ticker: "BTCUSDT", Interval: "15m", Span: "1 month"}
	bars := fetcher.GenerateBars(100, 5, 15*time.Minute)

	mock := &fetcher.MockFetcher{Bars: bars}
	first, err := Ensure(context.Background(), cfg, mock, ds, false)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if len(first) != 5 {
		t.Fatalf("expected 5 bars, got %d", len(first))
	}

	// Second run should read the CSV, never the fetcher.
	failing := &fetcher.MockFetcher{Err: errors.New("network down")}
	second, err := Ensure(context.Background(), cfg, failing, ds, false)
	if err != nil {
		t.Fatalf("Ensure (cached): %v", err)
	}
	if len(second) != 5 {
		t.Fatalf("expected 5 cached bars, got %d", len(second))
	}

	// Refresh forces a fetch and propagates the failure.
	if _, err := Ensure(context.Background(), cfg, failing, ds, true); err == nil {
		t.Fatal("expected fetch error on refresh")
	}
}
