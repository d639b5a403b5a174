package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"Stox/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Chart struct {
		Height       int    `yaml:"height"`
		DefaultRange string `yaml:"default_range"`
	} `yaml:"chart"`
	Refresh struct {
		Cron        string `yaml:"cron"`
		Concurrency int    `yaml:"concurrency"`
	} `yaml:"refresh"`
	Persistence struct {
		Disabled bool   `yaml:"disabled"`
		DataHome string `yaml:"data_home"`
	} `yaml:"persistence"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
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

	// .env never overrides variables already set in the environment
	_ = godotenv.Load()

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("STOX_REFRESH_CRON"); v != "" {
		cfg.Refresh.Cron = v
	}
	if v := os.Getenv("STOX_CHART_HEIGHT"); v != "" {
		if height, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			log.Printf("[WARN] ignoring STOX_CHART_HEIGHT=%q: not an integer", v)
		} else {
			cfg.Chart.Height = height
		}
	}
	if os.Getenv("STOX_NO_PERSISTENCE") == "1" {
		cfg.Persistence.Disabled = true
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = 200
	}
	if cfg.Chart.DefaultRange == "" {
		cfg.Chart.DefaultRange = string(model.Range1d)
	}
	if cfg.Refresh.Cron == "" {
		cfg.Refresh.Cron = "0 * * * * *"
	}
	if cfg.Refresh.Concurrency == 0 {
		cfg.Refresh.Concurrency = 4
	}
	if cfg.Persistence.DataHome == "" {
		cfg.Persistence.DataHome = defaultDataHome()
	}

	return cfg, nil
}

// defaultDataHome follows the XDG base directory spec.
func defaultDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "share")
	}
	return ""
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Chart.Height <= 0 {
		return fmt.Errorf("chart.height must be positive")
	}
	if _, err := model.ParseRange(c.Chart.DefaultRange); err != nil {
		return fmt.Errorf("chart.default_range: %w", err)
	}
	if c.Refresh.Concurrency <= 0 {
		return fmt.Errorf("refresh.concurrency must be positive")
	}
	if !c.Persistence.Disabled && c.Persistence.DataHome == "" {
		return fmt.Errorf("persistence.data_home is required (set XDG_DATA_HOME or HOME)")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether refresh updates should also go to Telegram.
func (c *Config) TelegramEnabled() bool {
	return strings.TrimSpace(c.Telegram.BotToken) != "" && strings.TrimSpace(c.Telegram.ChatID) != ""
}
