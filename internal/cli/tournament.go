package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
)

func newTournamentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Tournament registration commands",
	}

	cmd.AddCommand(newTournamentListCmd())
	cmd.AddCommand(newTournamentTeamsCmd())
	cmd.AddCommand(newTournamentCheckCmd())
	cmd.AddCommand(newTournamentRegisterCmd())
	cmd.AddCommand(newTournamentUnregisterCmd())

	return cmd
}

func newTournamentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tournaments and their registered teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := app.RegistrationService.Tournaments(cmd.Context())
			if err != nil {
				return err
			}

			out := make([]response.Tournament, 0, len(names))
			for _, name := range names {
				ids, err := app.RegistrationService.TournamentTeams(cmd.Context(), name)
				if err != nil {
					return err
				}
				out = append(out, response.Tournament{Name: name, Teams: response.TeamIDs(ids)})
			}
			output(cmd).Print(out)
			return nil
		},
	}
}

func newTournamentTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams <tournament>",
		Short: "List the teams registered for a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := app.RegistrationService.TournamentTeams(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			output(cmd).Print(response.Tournament{Name: args[0], Teams: response.TeamIDs(ids)})
			return nil
		},
	}
}

func newTournamentCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <tournament> <team-id>",
		Short: "Report whether a team is registered for a tournament",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registered, err := app.RegistrationService.IsRegistered(cmd.Context(), args[0], model.TeamID(args[1]))
			if err != nil {
				return err
			}
			output(cmd).Print(response.Registration{
				Tournament: args[0],
				TeamID:     args[1],
				Registered: registered,
			})
			return nil
		},
	}
}

func newTournamentRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <tournament> <team-id>",
		Short: "Register a team for a tournament (organizer)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOrganizer(cmd.Context()); err != nil {
				return err
			}
			if err := app.RegistrationService.RegisterTeam(cmd.Context(), args[0], model.TeamID(args[1])); err != nil {
				return err
			}
			output(cmd).PrintMessage("Registered " + args[1] + " for " + args[0])
			return nil
		},
	}
}

func newTournamentUnregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unregister <tournament> <team-id>",
		Short: "Withdraw a team from a tournament (organizer)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOrganizer(cmd.Context()); err != nil {
				return err
			}
			if err := app.RegistrationService.UnregisterTeam(cmd.Context(), args[0], model.TeamID(args[1])); err != nil {
				return err
			}
			output(cmd).PrintMessage("Unregistered " + args[1] + " from " + args[0])
			return nil
		},
	}
}
