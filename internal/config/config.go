package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

const (
	defaultExpires = 15 * time.Minute
	minExpires     = time.Second
	maxExpires     = 7 * 24 * time.Hour

	defaultHistoryLimit = 20
)

// Config holds optional defaults loaded from ~/.config/presign/config.yaml.
// PRESIGN_* environment variables override file values; CLI flags override
// both.
type Config struct {
	DefaultProfile string `yaml:"default_profile" env:"PRESIGN_PROFILE"`
	DefaultRegion  string `yaml:"default_region" env:"PRESIGN_REGION"`
	DefaultExpires string `yaml:"default_expires" env:"PRESIGN_EXPIRES"`
	History        bool   `yaml:"history" env:"PRESIGN_HISTORY"`
	HistoryLimit   int    `yaml:"history_limit" env:"PRESIGN_HISTORY_LIMIT"`
}

// Load reads the config file and applies environment overrides. A missing
// file yields a zero-value Config.
func Load() (*Config, error) {
	cfg := &Config{}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "presign", "config.yaml")
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	return cfg, nil
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// Expires returns the default lifetime for minted URLs, clamped to the
// range SigV4 accepts. Unset or unparseable values fall back to 15 minutes.
func (c *Config) Expires() time.Duration {
	d, err := time.ParseDuration(c.DefaultExpires)
	if err != nil || d <= 0 {
		return defaultExpires
	}
	return ClampExpires(d)
}

// ClampExpires bounds d to [1s, 168h], the lifetime range SigV4 permits.
func ClampExpires(d time.Duration) time.Duration {
	if d < minExpires {
		return minExpires
	}
	if d > maxExpires {
		return maxExpires
	}
	return d
}

// RecentLimit returns how many history entries to list by default.
func (c *Config) RecentLimit() int {
	if c.HistoryLimit <= 0 {
		return defaultHistoryLimit
	}
	return c.HistoryLimit
}
