package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseTestConfig is a helper that writes content to a temp file and loads it without validation.
func parseTestConfig(t *testing.T, content string) (*Config, error) {
	t.Helper()
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return LoadWithoutValidation(cfgPath)
}

func TestConfig_SyncSettings(t *testing.T) {
	content := `
[server]
port = 8585

[sync]
interval = "30m"
cleanup_after_sync = false
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Sync.Interval.Duration)
	assert.False(t, cfg.Sync.ShouldCleanupAfterSync(), "cleanup should be false when explicitly set")
}

func TestConfig_SyncCleanupDefault(t *testing.T) {
	content := `
[server]
port = 8585
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	// Default should be true
	assert.True(t, cfg.Sync.ShouldCleanupAfterSync(), "cleanup should default to true")
}

func TestConfig_EventsRetention(t *testing.T) {
	content := `
[events]
retention = "720h"
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	assert.Equal(t, 720*time.Hour, cfg.Events.Retention.Duration)
}
