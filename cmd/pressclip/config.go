package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/pressclip/strategy"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration file schema. Zero values fall back to
// DefaultConfig; command-line flags override the file.
type Config struct {
	DB            string        `yaml:"db"`
	Addr          string        `yaml:"addr"`
	LogLevel      string        `yaml:"log_level"`
	Retention     time.Duration `yaml:"retention"`
	PurgeInterval time.Duration `yaml:"purge_interval"`

	Pipeline struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"pipeline"`

	Fetch struct {
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
		RateLimit float64       `yaml:"rate_limit"`
		Burst     int           `yaml:"burst"`

		// RetryDelays are the pauses between attempts after a network
		// error, 429 or 5xx. Empty means a single attempt.
		RetryDelays []time.Duration `yaml:"retry_delays"`
	} `yaml:"fetch"`

	Browser struct {
		Bin      string `yaml:"bin"`
		Headless bool   `yaml:"headless"`

		// PageLoadTimeout overrides the News24 and rendered-article
		// navigation timeouts.
		PageLoadTimeout time.Duration `yaml:"page_load_timeout"`

		// PressReaderPageLoadTimeout overrides the PressReader navigation
		// timeout. See PressReaderTimeout.
		PressReaderPageLoadTimeout time.Duration `yaml:"pressreader_page_load_timeout"`
	} `yaml:"browser"`
}

// PressReaderTimeout returns the navigation timeout for PressReader pages.
// Without its own key, PressReader keeps its longer default unless
// page_load_timeout exceeds it.
func (c Config) PressReaderTimeout() time.Duration {
	if d := c.Browser.PressReaderPageLoadTimeout; d > 0 {
		return d
	}
	d := strategy.DefaultPressReaderConfig().PageLoadTimeout
	if c.Browser.PageLoadTimeout > d {
		return c.Browser.PageLoadTimeout
	}
	return d
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	var cfg Config
	cfg.DB = defaultDBPath()
	cfg.Addr = ":8080"
	cfg.LogLevel = "info"
	cfg.Retention = 24 * time.Hour
	cfg.PurgeInterval = time.Hour
	cfg.Pipeline.Timeout = 90 * time.Second
	cfg.Fetch.Timeout = 10 * time.Second
	cfg.Fetch.RateLimit = 1
	cfg.Fetch.Burst = 2
	cfg.Browser.Headless = true
	return cfg
}

// LoadConfig reads path over DefaultConfig. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pressclip.db"
	}
	dir := filepath.Join(home, ".pressclip")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pressclip.db")
}
