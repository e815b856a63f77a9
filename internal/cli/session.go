package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/auth"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session as a team operator or the organizer",
	}

	cmd.AddCommand(newLoginTeamCmd())
	cmd.AddCommand(newLoginOrganizerCmd())

	return cmd
}

func newLoginTeamCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "team <name>",
		Short: "Log in as the operator of the named team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.AuthService.LoginTeam(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			output(cmd).Print(response.SessionFromModel(session))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Team password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginOrganizerCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "organizer",
		Short: "Log in as the organizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.AuthService.LoginOrganizer(cmd.Context(), password)
			if err != nil {
				return err
			}
			output(cmd).Print(response.SessionFromModel(session))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Organizer password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.AuthService.Logout(cmd.Context()); err != nil {
				return err
			}
			output(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := currentSession(cmd.Context())
			if err != nil {
				return err
			}
			output(cmd).Print(response.SessionFromModel(session))
			return nil
		},
	}
}

// currentSession returns the persisted session, or nil when logged out
func currentSession(ctx context.Context) (*model.Session, error) {
	session, err := app.AuthService.CurrentUser(ctx)
	if errors.Is(err, model.ErrNoSession) {
		return nil, nil
	}
	return session, err
}

func requireOrganizer(ctx context.Context) error {
	session, err := currentSession(ctx)
	if err != nil {
		return err
	}
	if err := auth.RequireOrganizer(session); err != nil {
		return fmt.Errorf("%w: run 'tourney login organizer' first", err)
	}
	return nil
}

func requireTeamManager(ctx context.Context, id model.TeamID) error {
	session, err := currentSession(ctx)
	if err != nil {
		return err
	}
	return auth.RequireTeamManager(session, id)
}
