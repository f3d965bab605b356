package main

import (
	"context"
	"flag"
	"log"

	"github.com/imalkevich/candle-to-screenshot/internal/chart"
	"github.com/imalkevich/candle-to-screenshot/internal/cli"
	"github.com/imalkevich/candle-to-screenshot/internal/dataset"
	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

var (
	flagTicker   = flag.String("ticker", "", "Ticker symbol, e.g. BTCUSDT (required)")
	flagInterval = flag.String("interval", "", "Chart interval, e.g. 15m (required)")
	flagTime     = flag.String("time", "", `Time span, e.g. "1 month" (required)`)
	flagRefresh  = flag.Bool("refresh", false, "Re-fetch data even if the CSV already exists")
	flagSource   = flag.String("source", "binance", "Data source: binance or forex")
	flagSkip     = flag.Int("skip", 0, "Initial candles to skip (default from config, 480)")
	flagWindow   = flag.Int("window", 0, "Max candles per screenshot window (default from config, 96)")
	flagFresh    = flag.Bool("fresh", false, "Remove existing screenshots and regenerate everything")
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

	bars, err := dataset.Ensure(context.Background(), cfg, f, ds, *flagRefresh)
	if err != nil {
		log.Fatalf("[FATAL] fetch data: %v", err)
	}

	opts := chart.Options{Skip: cfg.Render.Skip, Window: cfg.Render.Window, Fresh: *flagFresh}
	if *flagSkip > 0 {
		opts.Skip = *flagSkip
	}
	if *flagWindow > 0 {
		opts.Window = *flagWindow
	}

	r := chart.NewRenderer(cfg.Dirs.Screenshots, ds)
	if err := r.Render(bars, opts); err != nil {
		log.Fatalf("[FATAL] render screenshots: %v", err)
	}
}
