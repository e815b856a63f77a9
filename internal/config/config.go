// Package config loads tourney settings from an optional YAML file with
// environment variable overrides layered on top.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by applyEnvOverrides
const (
	EnvConfigPath        = "TOURNEY_CONFIG"
	EnvStorage           = "TOURNEY_STORAGE"
	EnvSQLitePath        = "TOURNEY_SQLITE_PATH"
	EnvRedisURL          = "REDIS_URL"
	EnvPort              = "TOURNEY_PORT"
	EnvTeamPassword      = "TOURNEY_TEAM_PASSWORD"
	EnvOrganizerPassword = "TOURNEY_ORGANIZER_PASSWORD"
	EnvLogLevel          = "TOURNEY_LOG_LEVEL"
)

// Config is the full application configuration
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Fixtures FixturesConfig `yaml:"fixtures"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// StorageConfig selects and configures the key/value backend
type StorageConfig struct {
	// Type is one of "memory", "redis" or "sqlite"
	Type        string `yaml:"type"`
	SQLitePath  string `yaml:"sqlite_path"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// AuthConfig holds the shared secrets for the two roles
type AuthConfig struct {
	TeamPassword      string `yaml:"team_password"`
	OrganizerPassword string `yaml:"organizer_password"`
}

// FixturesConfig holds scheduling rules
type FixturesConfig struct {
	// ConflictWindow is a Go duration string; "0" disables conflict checks
	ConflictWindow      string `yaml:"conflict_window"`
	RequireRegistration bool   `yaml:"require_registration"`
}

// LoggingConfig controls the slog handler
type LoggingConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "text"
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Type:        "sqlite",
			SQLitePath:  filepath.Join(defaultDir(), "tourney.db"),
			RedisURL:    "redis://localhost:6379",
			RedisPrefix: "tourney",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     "15s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "30s",
		},
		Auth: AuthConfig{
			TeamPassword:      "123",
			OrganizerPassword: "admin123",
		},
		Fixtures: FixturesConfig{
			ConflictWindow: "2h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".tourney")
}

// DefaultPath is where the config file is looked for when neither a flag
// nor TOURNEY_CONFIG names one
func DefaultPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	return filepath.Join(defaultDir(), "config.yaml")
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Secrets live in here
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvStorage); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv(EnvTeamPassword); v != "" {
		c.Auth.TeamPassword = v
	}
	if v := os.Getenv(EnvOrganizerPassword); v != "" {
		c.Auth.OrganizerPassword = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks values that would otherwise fail later at wiring time
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("invalid storage type %q: must be memory, redis or sqlite", c.Storage.Type)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if _, err := c.ConflictWindow(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ConflictWindow parses the fixtures conflict window
func (c *Config) ConflictWindow() (time.Duration, error) {
	raw := strings.TrimSpace(c.Fixtures.ConflictWindow)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid conflict_window %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid conflict_window %q: must not be negative", raw)
	}
	return d, nil
}

// Duration parses one of the server timeout strings, falling back when it
// is empty or malformed
func Duration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ParseLevel maps a level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}
