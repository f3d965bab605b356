// Package cli holds the small bootstrap helpers shared by the four
// command-line tools.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/imalkevich/candle-to-screenshot/internal/config"
	"github.com/imalkevich/candle-to-screenshot/internal/fetcher"
)

// LoadConfig loads .env, then the YAML config (CONFIG_PATH override), and
// validates it.
func LoadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// NewFetcher selects the data source adapter from the -source flag.
func NewFetcher(cfg *config.Config, source string) (fetcher.Fetcher, error) {
	switch source {
	case "binance", "":
		return fetcher.NewBinanceFetcher(cfg.Binance.BaseURL, cfg.Proxy), nil
	case "forex":
		return fetcher.NewForexFetcher(cfg.Forex.BaseURL, cfg.Forex.APIKey, cfg.Proxy), nil
	default:
		return nil, fmt.Errorf("unknown data source %q (want binance or forex)", source)
	}
}
