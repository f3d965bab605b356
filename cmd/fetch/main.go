package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/imalkevich/candle-to-screenshot/internal/cli"
	"github.com/imalkevich/candle-to-screenshot/internal/dataset"
	"github.com/imalkevich/candle-to-screenshot/internal/model"
	"github.com/imalkevich/candle-to-screenshot/internal/watch"
)

var (
	flagTicker   = flag.String("ticker", "", "Ticker symbol, e.g. BTCUSDT (required)")
	flagInterval = flag.String("interval", "", "Chart interval, e.g. 15m (required)")
	flagTime     = flag.String("time", "", `Time span, e.g. "1 month" (required)`)
	flagRefresh  = flag.Bool("refresh", false, "Re-fetch data even if the CSV already exists")
	flagSource   = flag.String("source", "binance", "Data source: binance or forex")
	flagWatch    = flag.String("watch-cron", "", "Optional cron spec (with seconds) to keep re-fetching, e.g. \"0 0 * * * *\"")
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := dataset.Ensure(ctx, cfg, f, ds, *flagRefresh); err != nil {
		log.Fatalf("[FATAL] fetch data: %v", err)
	}

	if *flagWatch == "" {
		return
	}

	// Keep the CSV fresh on a schedule until interrupted.
	refresher := watch.NewRefresher(ctx, func(ctx context.Context) error {
		_, err := dataset.Ensure(ctx, cfg, f, ds, true)
		return err
	})
	if err := refresher.Register(*flagWatch); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	refresher.Start()
	defer refresher.Stop()

	log.Println("[INFO] watching; press Ctrl+C to stop")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("[INFO] shutdown signal received, stopping")
}
