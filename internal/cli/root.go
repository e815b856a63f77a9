package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/tourneytrack/internal/factory"
)

// Commands carrying this annotation do not open the local store
const skipAppAnnotation = "skip-app"

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

// newRootCmd builds the command tree. When preset is non-nil it is used
// instead of opening the configured store.
func newRootCmd(preset *factory.App) *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tourney",
		Short: "Local tournament bookkeeping",
		Long: `tourney keeps teams, fixtures, results and tournament registrations
in a local store (sqlite by default, or redis).

Log in as the organizer to make changes; a team operator may only update
their own team's profile.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipAppAnnotation] != "" {
				return nil
			}
			if preset != nil {
				app = preset
				return nil
			}

			settings, err := cfg.Settings()
			if err != nil {
				return err
			}
			factoryCfg, err := factory.ConfigFromSettings(settings, newLogger(cfg.Verbose))
			if err != nil {
				return err
			}

			app, err = factory.New(cmd.Context(), factoryCfg)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Config file path (env: TOURNEY_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: memory, redis, sqlite")
	rootCmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newTeamCmd())
	rootCmd.AddCommand(newTournamentCmd())
	rootCmd.AddCommand(newFixtureCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command
func Execute() {
	err := NewRootCmd().Execute()
	if app != nil {
		_ = app.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
