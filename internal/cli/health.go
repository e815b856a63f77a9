package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/tourneytrack/internal/api/response"
)

// HealthResult is the server health response
type HealthResult struct {
	Status string `json:"status"`
}

// RemoteStatus is what a running server reports about itself
type RemoteStatus struct {
	Server  string           `json:"server"`
	Health  HealthResult     `json:"health"`
	Session response.Session `json:"session"`
}

func newHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "health",
		Short:       "Check a running server's health and session",
		Annotations: map[string]string{skipAppAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(cfg.ServerURL)
			status := RemoteStatus{Server: cfg.ServerURL}

			if err := client.Get(cmd.Context(), "/api/v1/health", &status.Health); err != nil {
				return err
			}
			if err := client.Get(cmd.Context(), "/api/v1/session", &status.Session); err != nil {
				return err
			}

			output(cmd).Print(status)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: TOURNEY_SERVER)")
	return cmd
}
