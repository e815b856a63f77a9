package cli

import (
	"os"

	"github.com/mcoot/tourneytrack/internal/config"
)

// Config holds CLI flag values
type Config struct {
	// ConfigPath is the YAML settings file
	ConfigPath string
	// Storage overrides the configured backend when set
	Storage string
	// DBPath overrides the sqlite database file when set
	DBPath    string
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ConfigPath: config.DefaultPath(),
		ServerURL:  getEnvOrDefault("TOURNEY_SERVER", "http://localhost:8080"),
		Output:     "text",
		Verbose:    false,
	}
}

// Settings loads the settings file and applies flag overrides
func (c *Config) Settings() (*config.Config, error) {
	settings, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.Storage != "" {
		settings.Storage.Type = c.Storage
	}
	if c.DBPath != "" {
		settings.Storage.SQLitePath = c.DBPath
	}
	return settings, settings.Validate()
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
