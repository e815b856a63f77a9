package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/tourneytrack/internal/collection"
	"github.com/mcoot/tourneytrack/internal/config"
	"github.com/mcoot/tourneytrack/internal/dependencies/clock"
	"github.com/mcoot/tourneytrack/internal/dependencies/random"
	"github.com/mcoot/tourneytrack/internal/services/auth"
	"github.com/mcoot/tourneytrack/internal/services/fixtures"
	"github.com/mcoot/tourneytrack/internal/services/integrity"
	"github.com/mcoot/tourneytrack/internal/services/registration"
	"github.com/mcoot/tourneytrack/internal/services/teams"
	"github.com/mcoot/tourneytrack/internal/storage"
	"github.com/mcoot/tourneytrack/internal/storage/memory"
	redisstorage "github.com/mcoot/tourneytrack/internal/storage/redis"
	sqlitestorage "github.com/mcoot/tourneytrack/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage
	Store   *collection.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService         *auth.Service
	IntegrityService    *integrity.Service
	TeamService         *teams.Service
	RegistrationService *registration.Service
	FixtureService      *fixtures.Service

	// StartupCleanup is what the construction-time orphan sweep removed
	StartupCleanup integrity.Report
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds database settings (optional, defaults to ~/.tourney/tourney.db)
	SQLiteConfig *sqlitestorage.Config
	// AuthConfig holds the role secrets (optional, defaults to auth.DefaultConfig())
	AuthConfig auth.Config
	// FixturesConfig holds scheduling rules. The zero value disables
	// conflict checks; use fixtures.DefaultConfig() for the usual rules.
	FixturesConfig fixtures.Config
}

// ConfigFromSettings translates loaded settings into factory configuration
func ConfigFromSettings(settings *config.Config, logger *slog.Logger) (Config, error) {
	window, err := settings.ConflictWindow()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Logger:      logger,
		StorageType: settings.Storage.Type,
		AuthConfig: auth.Config{
			TeamPassword:      settings.Auth.TeamPassword,
			OrganizerPassword: settings.Auth.OrganizerPassword,
		},
		FixturesConfig: fixtures.Config{
			ConflictWindow:      window,
			RequireRegistration: settings.Fixtures.RequireRegistration,
		},
	}

	switch cfg.StorageType {
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = settings.Storage.RedisURL
		if settings.Storage.RedisPrefix != "" {
			redisCfg.KeyPrefix = settings.Storage.RedisPrefix
		}
		cfg.RedisConfig = &redisCfg
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if settings.Storage.SQLitePath != "" {
			sqliteCfg.Path = settings.Storage.SQLitePath
		}
		cfg.SQLiteConfig = &sqliteCfg
	}

	return cfg, nil
}

// New creates a new application with all dependencies wired. Orphaned
// fixtures and registrations left by an earlier run are removed before it
// returns.
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	app, err := newWithDependencies(ctx, store, clock.New(), random.New(), cfg.AuthConfig, cfg.FixturesConfig, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func openStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisStore, nil
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if cfg.SQLiteConfig != nil {
			sqliteCfg = *cfg.SQLiteConfig
		}
		sqliteStore, err := sqlitestorage.New(sqliteCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return sqliteStore, nil
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	ctx context.Context,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	fixturesCfg fixtures.Config,
	logger *slog.Logger,
) (*App, error) {
	collections := collection.NewStore(store, logger)

	authService, err := auth.New(collections, clk, authCfg, logger)
	if err != nil {
		return nil, err
	}
	integrityService := integrity.New(collections, logger)
	teamService := teams.New(collections, integrityService, rnd, logger)
	registrationService := registration.New(collections, logger)
	fixtureService := fixtures.New(collections, clk, rnd, fixturesCfg, logger)

	report, err := integrityService.CleanupOrphans(ctx)
	if err != nil {
		return nil, fmt.Errorf("startup cleanup: %w", err)
	}

	return &App{
		Storage:             store,
		Store:               collections,
		Clock:               clk,
		Random:              rnd,
		AuthService:         authService,
		IntegrityService:    integrityService,
		TeamService:         teamService,
		RegistrationService: registrationService,
		FixtureService:      fixtureService,
		StartupCleanup:      report,
	}, nil
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
