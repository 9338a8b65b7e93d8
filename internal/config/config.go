// Package config loads and validates the cockpit configuration from viper.
// Validation here is strict: an invalid pattern or a missing watch directory
// is fatal before any component starts. The watch pipeline itself is more
// forgiving (bad patterns are silently skipped by the filter), so a config
// that passed validation never exercises that leniency.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Config is the immutable root configuration. Loaded once and injected;
// never mutated by any component.
type Config struct {
	Directories    []string           `mapstructure:"directories"`
	IgnorePatterns []string           `mapstructure:"ignore_patterns"`
	Notifications  NotificationConfig `mapstructure:"notifications"`
	Database       DatabaseConfig     `mapstructure:"database"`
	AI             AIConfig           `mapstructure:"ai"`
}

// NotificationConfig controls nudge generation.
type NotificationConfig struct {
	DailyDigestHour           int  `mapstructure:"daily_digest_hour"`
	MaxNudgesPerDay           int  `mapstructure:"max_nudges_per_day"`
	EnableContextSwitchNudges bool `mapstructure:"enable_context_switch_nudges"`
}

// DatabaseConfig controls persistence and retention.
type DatabaseConfig struct {
	Path               string `mapstructure:"path"`
	MaxSnapshots       int    `mapstructure:"max_snapshots"`
	EventRetentionDays int    `mapstructure:"event_retention_days"`
}

// AIConfig controls the optional insight text generation.
type AIConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Model     string `mapstructure:"model"`
	OllamaURL string `mapstructure:"ollama_url"`
}

// Load unmarshals the global viper state into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	for i, dir := range cfg.Directories {
		cfg.Directories[i] = ExpandHome(dir)
	}
	cfg.Database.Path = ExpandHome(cfg.Database.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration. Errors here are fatal before the
// watch pipeline starts.
func (c *Config) Validate() error {
	if len(c.Directories) == 0 {
		return fmt.Errorf("at least one directory must be configured")
	}

	for _, dir := range c.Directories {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("configured directory does not exist: %s", dir)
		}
	}

	for _, pattern := range c.IgnorePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
	}

	if c.Notifications.DailyDigestHour < 0 || c.Notifications.DailyDigestHour > 23 {
		return fmt.Errorf("daily_digest_hour must be between 0 and 23")
	}
	if c.Notifications.MaxNudgesPerDay < 0 || c.Notifications.MaxNudgesPerDay > 100 {
		return fmt.Errorf("max_nudges_per_day must not exceed 100")
	}
	if c.Database.MaxSnapshots < 0 || c.Database.MaxSnapshots > 1_000_000 {
		return fmt.Errorf("max_snapshots must not exceed 1,000,000")
	}

	return nil
}

// SearchIndexPath returns the bleve index directory, a sibling of the
// database file.
func (c *Config) SearchIndexPath() string {
	return filepath.Join(filepath.Dir(c.Database.Path), "search_index")
}

// DefaultDatabasePath returns the database location used when none is
// configured.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cockpit", "data.db")
	}
	return filepath.Join(home, ".local", "share", "cockpit", "data.db")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
