package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Dirs struct {
		Data        string `yaml:"data"`
		Screenshots string `yaml:"screenshots"`
		Processed   string `yaml:"processed"`
	} `yaml:"dirs"`
	Binance struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"binance"`
	Forex struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"forex"`
	Render struct {
		Skip   int `yaml:"skip"`
		Window int `yaml:"window"`
	} `yaml:"render"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.Binance.BaseURL = v
	}
	if v := os.Getenv("FOREX_BASE_URL"); v != "" {
		cfg.Forex.BaseURL = v
	}
	if v := os.Getenv("FOREX_API_KEY"); v != "" {
		cfg.Forex.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Dirs.Data = v
	}

	// Defaults
	if cfg.Dirs.Data == "" {
		cfg.Dirs.Data = "data"
	}
	if cfg.Dirs.Screenshots == "" {
		cfg.Dirs.Screenshots = "screenshots"
	}
	if cfg.Dirs.Processed == "" {
		cfg.Dirs.Processed = "processed"
	}
	if cfg.Binance.BaseURL == "" {
		cfg.Binance.BaseURL = "https://api.binance.com"
	}
	if cfg.Forex.BaseURL == "" {
		cfg.Forex.BaseURL = "https://api.exchangerate.host"
	}
	if cfg.Render.Skip == 0 {
		cfg.Render.Skip = 480
	}
	if cfg.Render.Window == 0 {
		cfg.Render.Window = 96
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/label_journal.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Dirs.Data == "" || c.Dirs.Screenshots == "" || c.Dirs.Processed == "" {
		return fmt.Errorf("dirs.data, dirs.screenshots and dirs.processed are required")
	}
	if c.Binance.BaseURL == "" {
		return fmt.Errorf("binance.base_url is required")
	}
	if c.Render.Skip < 0 {
		return fmt.Errorf("render.skip must not be negative")
	}
	if c.Render.Window <= 0 {
		return fmt.Errorf("render.window must be positive")
	}
	return nil
}
