package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, validConfig().Validate())
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "server.port")
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Server.LogLevel = "verbose"

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "server.log_level")
}

func TestValidate_EmptyDatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Path = ""

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "database.path")
}

func TestValidate_SyncIntervalTooShort(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.Interval.Duration = 10 * time.Second

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "sync.interval")
}

func TestValidate_NegativeRetention(t *testing.T) {
	cfg := validConfig()
	cfg.Events.Retention.Duration = -time.Hour

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "events.retention")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = -1
	cfg.Server.LogLevel = "loud"
	cfg.Database.Path = ""

	assert.Len(t, cfg.Validate(), 3)
}
