package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/imalkevich/candle-to-screenshot/internal/chart"
	"github.com/imalkevich/candle-to-screenshot/internal/cli"
	"github.com/imalkevich/candle-to-screenshot/internal/dataset"
	"github.com/imalkevich/candle-to-screenshot/internal/journal"
	"github.com/imalkevich/candle-to-screenshot/internal/model"
	"github.com/imalkevich/candle-to-screenshot/internal/session"
	"github.com/imalkevich/candle-to-screenshot/internal/stats"
	"github.com/imalkevich/candle-to-screenshot/internal/ui"
)

var (
	flagTicker   = flag.String("ticker", "", "Ticker symbol, e.g. BTCUSDT (required)")
	flagInterval = flag.String("interval", "", "Chart interval, e.g. 15m (required)")
	flagTime     = flag.String("time", "", `Time span, e.g. "1 month" (required)`)
	flagRefresh  = flag.Bool("refresh", false, "Re-fetch data even if the CSV already exists")
	flagSource   = flag.String("source", "binance", "Data source: binance or forex")
	flagSkip     = flag.Int("skip", 0, "Initial candles to skip if generation is needed")
	flagWindow   = flag.Int("window", 0, "Max candles per window if generation is needed")
	flagRestart  = flag.Bool("restart", false, "Clear existing labeled copies and start from the first screenshot")
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

	// Generate screenshots on demand when none exist yet.
	r := chart.NewRenderer(cfg.Dirs.Screenshots, ds)
	screenshots, err := chart.ListScreenshots(r.OutDir)
	if err != nil {
		log.Fatalf("[FATAL] list screenshots: %v", err)
	}
	if len(screenshots) == 0 {
		log.Println("[INFO] no screenshots found, generating")
		opts := chart.Options{Skip: cfg.Render.Skip, Window: cfg.Render.Window}
		if *flagSkip > 0 {
			opts.Skip = *flagSkip
		}
		if *flagWindow > 0 {
			opts.Window = *flagWindow
		}
		if err := r.Render(bars, opts); err != nil {
			log.Fatalf("[FATAL] render screenshots: %v", err)
		}
		if screenshots, err = chart.ListScreenshots(r.OutDir); err != nil {
			log.Fatalf("[FATAL] list screenshots: %v", err)
		}
	} else {
		log.Printf("[INFO] using existing screenshots: %s", r.OutDir)
	}
	if len(screenshots) == 0 {
		log.Println("[WARN] no images to label after generation attempt, exiting")
		return
	}

	folders := session.NewFolders(cfg.Dirs.Processed, ds)
	if err := folders.Ensure(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	if *flagRestart {
		if err := folders.Clear(); err != nil {
			log.Fatalf("[FATAL] clear processed folders: %v", err)
		}
	}

	var jnl journal.Journal
	if sj, err := journal.NewSQLiteJournal(resolveJournalPath(cfg.Database.SQLitePath, cfg.Dirs.Data), ds.Name()); err != nil {
		log.Printf("[WARN] init sqlite journal failed, using noop: %v", err)
		jnl = journal.NewNoopJournal()
	} else {
		jnl = sj
		defer sj.Close()
	}

	sess := session.New(folders, screenshots, bars, jnl)
	if err := sess.Restore(); err != nil {
		log.Fatalf("[FATAL] restore session: %v", err)
	}
	if sess.Done() {
		log.Println("[INFO] all images already labeled")
		fmt.Print(stats.FormatSummary(sess.Stats()))
		return
	}

	ui.RunLabeler(sess)
	fmt.Print(stats.FormatSummary(sess.Stats()))
}

// resolveJournalPath keeps the default journal inside the data dir even
// when the data dir itself was overridden.
func resolveJournalPath(path, dataDir string) string {
	if filepath.Dir(path) == "data" && dataDir != "data" {
		return filepath.Join(dataDir, filepath.Base(path))
	}
	return path
}
