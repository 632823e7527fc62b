package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Scan struct {
		TriggerThresholdPct float64 `yaml:"trigger_threshold_pct"`
		MAWindow            int     `yaml:"ma_window"`
		ChunkSize           int     `yaml:"chunk_size"`
		LookbackDays        int     `yaml:"lookback_days"`
	} `yaml:"scan"`
	Listing struct {
		URL string `yaml:"url"` // empty uses the NSE archives listing
	} `yaml:"listing"`
	DataSource struct {
		Provider     string `yaml:"provider"` // yahoo, alpaca or mock
		AlpacaKey    string `yaml:"alpaca_key"`
		AlpacaSecret string `yaml:"alpaca_secret"`
	} `yaml:"data_source"`
	Export struct {
		Dir             string `yaml:"dir"`
		IncludeNewsLink bool   `yaml:"include_news_link"`
	} `yaml:"export"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Quiet bool   `yaml:"quiet"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Export.IncludeNewsLink = true // opt-out key, so pre-set before unmarshal

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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.DataSource.AlpacaKey = v
	}
	if v := os.Getenv("ALPACA_SECRET_KEY"); v != "" {
		cfg.DataSource.AlpacaSecret = v
	}
	if v := os.Getenv("LISTING_URL"); v != "" {
		cfg.Listing.URL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_THRESHOLD"); v != "" {
		var threshold float64
		if _, err := fmt.Sscanf(v, "%f", &threshold); err == nil {
			cfg.Scan.TriggerThresholdPct = threshold
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Scan.TriggerThresholdPct == 0 {
		cfg.Scan.TriggerThresholdPct = 5.0
	}
	if cfg.Scan.MAWindow == 0 {
		cfg.Scan.MAWindow = 20
	}
	if cfg.Scan.ChunkSize == 0 {
		cfg.Scan.ChunkSize = 300
	}
	if cfg.Scan.LookbackDays == 0 {
		cfg.Scan.LookbackDays = 90
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "reports"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 19 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/market_scanner.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Scan.TriggerThresholdPct <= 0 {
		return fmt.Errorf("scan.trigger_threshold_pct must be positive")
	}
	if c.Scan.MAWindow <= 0 {
		return fmt.Errorf("scan.ma_window must be positive")
	}
	if c.Scan.ChunkSize <= 0 {
		return fmt.Errorf("scan.chunk_size must be positive")
	}
	if c.Scan.LookbackDays <= 0 {
		return fmt.Errorf("scan.lookback_days must be positive")
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "alpaca":
		if c.DataSource.AlpacaKey == "" || c.DataSource.AlpacaSecret == "" {
			return fmt.Errorf("data_source.provider alpaca requires alpaca_key and alpaca_secret")
		}
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	return nil
}
