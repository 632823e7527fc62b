package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scan.TriggerThresholdPct != 5.0 {
		t.Errorf("expected threshold 5.0, got %v", cfg.Scan.TriggerThresholdPct)
	}
	if cfg.Scan.MAWindow != 20 || cfg.Scan.ChunkSize != 300 || cfg.Scan.LookbackDays != 90 {
		t.Errorf("unexpected scan defaults: %+v", cfg.Scan)
	}
	if cfg.DataSource.Provider != "yahoo" {
		t.Errorf("expected default provider yahoo, got %s", cfg.DataSource.Provider)
	}
	if cfg.Export.Dir != "reports" {
		t.Errorf("expected default export dir reports, got %s", cfg.Export.Dir)
	}
	if !cfg.Export.IncludeNewsLink {
		t.Error("expected news links on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
scan:
  trigger_threshold_pct: 3.5
  chunk_size: 100
export:
  dir: out
  include_news_link: false
data_source:
  provider: mock
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scan.TriggerThresholdPct != 3.5 {
		t.Errorf("expected threshold 3.5, got %v", cfg.Scan.TriggerThresholdPct)
	}
	if cfg.Scan.ChunkSize != 100 {
		t.Errorf("expected chunk size 100, got %d", cfg.Scan.ChunkSize)
	}
	if cfg.Scan.MAWindow != 20 {
		t.Errorf("unset keys keep defaults, got ma_window %d", cfg.Scan.MAWindow)
	}
	if cfg.Export.Dir != "out" || cfg.Export.IncludeNewsLink {
		t.Errorf("unexpected export config: %+v", cfg.Export)
	}
	if cfg.DataSource.Provider != "mock" {
		t.Errorf("expected provider mock, got %s", cfg.DataSource.Provider)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
scan:
  trigger_threshold_pct: 3.5
`)
	t.Setenv("SCAN_THRESHOLD", "7.5")
	t.Setenv("ALPACA_API_KEY", "key-from-env")
	t.Setenv("ALPACA_SECRET_KEY", "secret-from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scan.TriggerThresholdPct != 7.5 {
		t.Errorf("env must override file, got %v", cfg.Scan.TriggerThresholdPct)
	}
	if cfg.DataSource.AlpacaKey != "key-from-env" || cfg.DataSource.AlpacaSecret != "secret-from-env" {
		t.Errorf("expected alpaca credentials from env, got %+v", cfg.DataSource)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative threshold", func(c *Config) { c.Scan.TriggerThresholdPct = -1 }},
		{"zero ma window", func(c *Config) { c.Scan.MAWindow = 0 }},
		{"zero chunk size", func(c *Config) { c.Scan.ChunkSize = 0 }},
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }},
		{"alpaca without keys", func(c *Config) { c.DataSource.Provider = "alpaca" }},
	}
	for _, tt := range tests {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("%s: load: %v", tt.name, err)
		}
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
