// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML values can be written as "6h" or
// "30m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Sync     SyncConfig     `toml:"sync"`
	Events   EventsConfig   `toml:"events"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// SyncConfig controls scheduled synchronization runs.
type SyncConfig struct {
	// Interval between automatic runs for imports in auto trigger mode.
	Interval Duration `toml:"interval"`

	// CleanupAfterSync runs the empty-parent collection after every
	// finished run.
	CleanupAfterSync *bool `toml:"cleanup_after_sync"`
}

// ShouldCleanupAfterSync reports the cleanup-after-sync setting, defaulting
// to true when unset.
func (s *SyncConfig) ShouldCleanupAfterSync() bool {
	if s.CleanupAfterSync == nil {
		return true
	}
	return *s.CleanupAfterSync
}

// EventsConfig controls the persisted event log.
type EventsConfig struct {
	Retention Duration `toml:"retention"`
}

// Load reads, parses, and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := parse(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing}
	cfgErr.Errors = cfg.Validate()
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, skipping
// validation. Unresolved environment variables are still an error.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, missing, err := parse(path)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}
	return cfg, nil
}

func parse(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/mediasync.db"
	}
	if c.Sync.Interval.Duration == 0 {
		c.Sync.Interval.Duration = 6 * time.Hour
	}
	if c.Events.Retention.Duration == 0 {
		c.Events.Retention.Duration = 90 * 24 * time.Hour
	}
}
