package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/tourneytrack/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Settings file commands",
	}

	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a settings file with the default values",
		Annotations: map[string]string{skipAppAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(cfg.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.ConfigPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			settings := config.DefaultConfig()
			if cfg.Storage != "" {
				settings.Storage.Type = cfg.Storage
			}
			if cfg.DBPath != "" {
				settings.Storage.SQLitePath = cfg.DBPath
			}
			if err := settings.Validate(); err != nil {
				return err
			}
			if err := settings.Save(cfg.ConfigPath); err != nil {
				return err
			}

			output(cmd).PrintMessage("Wrote " + cfg.ConfigPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
