package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"NavSentinel/internal/model"
)

// defaultWeights is the FANG+ constituent table (published composition
// ratios). Overridable per deployment via fund.weights in the YAML file.
var defaultWeights = map[string]float64{
	"CRWD":  0.1110,
	"NVDA":  0.1100,
	"AAPL":  0.1050,
	"GOOGL": 0.1040,
	"AVGO":  0.1000,
	"MSFT":  0.0950,
	"NOW":   0.0910,
	"AMZN":  0.0890,
	"NFLX":  0.0820,
	"META":  0.0790,
}

// Config holds all application configuration.
type Config struct {
	Fund struct {
		Code     string             `yaml:"code"`
		FXSymbol string             `yaml:"fx_symbol"`
		Weights  map[string]float64 `yaml:"weights"`
	} `yaml:"fund"`
	Market struct {
		WindowDays int `yaml:"window_days"`
	} `yaml:"market"`
	Line struct {
		ChannelToken string `yaml:"channel_token"`
		UserID       string `yaml:"user_id"`
	} `yaml:"line"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
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
	if v := os.Getenv("FUND_CODE"); v != "" {
		cfg.Fund.Code = v
	}
	if v := os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"); v != "" {
		cfg.Line.ChannelToken = v
	}
	if v := os.Getenv("LINE_TO_USER_ID"); v != "" {
		cfg.Line.UserID = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Market.WindowDays = n
		}
	}

	// Defaults
	if cfg.Fund.Code == "" {
		cfg.Fund.Code = "3346"
	}
	if cfg.Fund.FXSymbol == "" {
		cfg.Fund.FXSymbol = "USDJPY=X"
	}
	if len(cfg.Fund.Weights) == 0 {
		cfg.Fund.Weights = make(map[string]float64, len(defaultWeights))
		for ticker, w := range defaultWeights {
			cfg.Fund.Weights[ticker] = w
		}
	}
	if cfg.Market.WindowDays == 0 {
		cfg.Market.WindowDays = 7
	}

	return cfg, nil
}

// Validate checks that all required fields are set. LINE credentials are
// deliberately not required: a run without them still computes and prints
// the estimate, it only skips delivery.
func (c *Config) Validate() error {
	if c.Fund.Code == "" {
		return fmt.Errorf("fund.code is required")
	}
	if c.Fund.FXSymbol == "" {
		return fmt.Errorf("fund.fx_symbol is required")
	}
	if len(c.Fund.Weights) == 0 {
		return fmt.Errorf("fund.weights must not be empty")
	}
	var sum float64
	for ticker, w := range c.Fund.Weights {
		if w <= 0 {
			return fmt.Errorf("fund.weights[%s] must be positive", ticker)
		}
		sum += w
	}
	if sum > 1.0+1e-9 {
		return fmt.Errorf("fund.weights sum to %.4f, must not exceed 1.0", sum)
	}
	if c.Market.WindowDays < 2 {
		return fmt.Errorf("market.window_days must be at least 2")
	}
	return nil
}

// Holdings returns the weight table as a slice ordered by descending
// weight (ties broken by ticker) so downstream output is deterministic.
// Weights are passed through as configured, never normalized.
func (c *Config) Holdings() []model.Holding {
	hs := make([]model.Holding, 0, len(c.Fund.Weights))
	for ticker, w := range c.Fund.Weights {
		hs = append(hs, model.Holding{Ticker: ticker, Weight: w})
	}
	sort.Slice(hs, func(i, j int) bool {
		if hs[i].Weight != hs[j].Weight {
			return hs[i].Weight > hs[j].Weight
		}
		return hs[i].Ticker < hs[j].Ticker
	})
	return hs
}
