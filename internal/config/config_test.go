package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "123", cfg.Auth.TeamPassword)
	assert.Equal(t, "admin123", cfg.Auth.OrganizerPassword)

	window, err := cfg.ConflictWindow()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, window)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  type: redis
  redis_url: redis://cache:6379/1
server:
  port: 9000
fixtures:
  conflict_window: 90m
  require_registration: true
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "redis://cache:6379/1", cfg.Storage.RedisURL)
	assert.Equal(t, "tourney", cfg.Storage.RedisPrefix, "unset keys keep defaults")
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Fixtures.RequireRegistration)

	window, _ := cfg.ConflictWindow()
	assert.Equal(t, 90*time.Minute, window)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "storage: [oops"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("override file values", func(t *testing.T) {
		t.Setenv(EnvStorage, "memory")
		t.Setenv(EnvPort, "7000")
		t.Setenv(EnvOrganizerPassword, "s3cret")
		t.Setenv(EnvLogLevel, "warn")

		cfg, err := Load(writeConfig(t, "storage:\n  type: sqlite\nserver:\n  port: 9000\n"))
		require.NoError(t, err)

		assert.Equal(t, "memory", cfg.Storage.Type)
		assert.Equal(t, 7000, cfg.Server.Port)
		assert.Equal(t, "s3cret", cfg.Auth.OrganizerPassword)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("apply without a file", func(t *testing.T) {
		t.Setenv(EnvSQLitePath, "/tmp/t.db")
		t.Setenv(EnvRedisURL, "redis://elsewhere:6379")
		t.Setenv(EnvTeamPassword, "letmein")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "/tmp/t.db", cfg.Storage.SQLitePath)
		assert.Equal(t, "redis://elsewhere:6379", cfg.Storage.RedisURL)
		assert.Equal(t, "letmein", cfg.Auth.TeamPassword)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv(EnvPort, "eighty")

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Storage.Type = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Fixtures.ConflictWindow = "soon"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Fixtures.ConflictWindow = "-1h"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Logging.Level = "chatty"
	assert.Error(t, cfg.Validate())
}

func TestConflictWindowDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fixtures.ConflictWindow = "0"

	window, err := cfg.ConflictWindow()
	require.NoError(t, err)
	assert.Zero(t, window)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Storage.Type = "memory"
	cfg.Server.Port = 8181

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, Duration("5s", time.Minute))
	assert.Equal(t, time.Minute, Duration("", time.Minute))
	assert.Equal(t, time.Minute, Duration("never", time.Minute))
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
