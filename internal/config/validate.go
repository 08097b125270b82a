// internal/config/validate.go
package config

import (
	"fmt"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path: required")
	}

	if c.Sync.Interval.Duration < 0 {
		errs = append(errs, fmt.Sprintf("sync.interval: must not be negative, got %s", c.Sync.Interval.Duration))
	}
	if c.Sync.Interval.Duration > 0 && c.Sync.Interval.Duration < time.Minute {
		errs = append(errs, fmt.Sprintf("sync.interval: must be at least 1m, got %s", c.Sync.Interval.Duration))
	}

	if c.Events.Retention.Duration < 0 {
		errs = append(errs, fmt.Sprintf("events.retention: must not be negative, got %s", c.Events.Retention.Duration))
	}

	return errs
}
