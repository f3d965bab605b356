package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/imalkevich/candle-to-screenshot/internal/cli"
	"github.com/imalkevich/candle-to-screenshot/internal/dataset"
	"github.com/imalkevich/candle-to-screenshot/internal/model"
	"github.com/imalkevich/candle-to-screenshot/internal/review"
	"github.com/imalkevich/candle-to-screenshot/internal/session"
	"github.com/imalkevich/candle-to-screenshot/internal/ui"
)

var (
	flagTicker   = flag.String("ticker", "", "Ticker symbol, e.g. BTCUSDT (required)")
	flagInterval = flag.String("interval", "", "Chart interval, e.g. 15m (required)")
	flagTime     = flag.String("time", "", `Time span, e.g. "1 month" (required)`)
	flagRefresh  = flag.Bool("refresh", false, "Re-fetch data even if the CSV already exists")
	flagSource   = flag.String("source", "binance", "Data source: binance or forex")
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	flag.Parse()
	if *flagTicker == "" || *flagInterval == "" || *flagTime == "" {
		log.Fatal("[FATAL] -ticker, -interval and -time are required")
	}

	cfg, err := cli.LoadConfig()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	f, err := cli.NewFetcher(cfg, *flagSource)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	ds := model.Dataset{Ticker: *flagTicker, Interval: *flagInterval, Span: *flagTime}

	// Bars are needed for the per-trade candle details and P&L.
	bars, err := dataset.Ensure(context.Background(), cfg, f, ds, *flagRefresh)
	if err != nil {
		log.Fatalf("[FATAL] fetch data: %v", err)
	}

	folders := session.NewFolders(cfg.Dirs.Processed, ds)
	if _, err := os.Stat(folders.Base); os.IsNotExist(err) {
		log.Printf("[WARN] processed folder %s does not exist, nothing to review", folders.Base)
	}

	trades, err := review.Reconstruct(folders)
	if err != nil {
		log.Fatalf("[FATAL] reconstruct trades: %v", err)
	}
	log.Printf("[INFO] reconstructed %d closed trades", len(trades))

	ui.RunReviewer(trades, bars)
}
