package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dirs.Data != "data" || cfg.Dirs.Screenshots != "screenshots" || cfg.Dirs.Processed != "processed" {
		t.Errorf("unexpected default dirs: %+v", cfg.Dirs)
	}
	if cfg.Binance.BaseURL != "https://api.binance.com" {
		t.Errorf("binance base_url = %q", cfg.Binance.BaseURL)
	}
	if cfg.Render.Skip != 480 || cfg.Render.Window != 96 {
		t.Errorf("render defaults = %+v", cfg.Render)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
dirs:
  data: /tmp/ohlc
render:
  skip: 100
  window: 50
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BINANCE_BASE_URL", "http://localhost:9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dirs.Data != "/tmp/ohlc" {
		t.Errorf("dirs.data = %q", cfg.Dirs.Data)
	}
	if cfg.Render.Skip != 100 || cfg.Render.Window != 50 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Binance.BaseURL != "http://localhost:9999" {
		t.Errorf("env override did not apply: %q", cfg.Binance.BaseURL)
	}
}

func TestValidate_Invalid(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Render.Window = -5
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative window")
	}
}
