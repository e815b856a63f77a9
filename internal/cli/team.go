package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
)

type teamFlags struct {
	name           string
	department     string
	managerName    string
	managerContact string
	institution    string
}

func (f *teamFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Team name")
	cmd.Flags().StringVar(&f.department, "department", "", "Department")
	cmd.Flags().StringVar(&f.managerName, "manager-name", "", "Manager name")
	cmd.Flags().StringVar(&f.managerContact, "manager-contact", "", "Manager contact")
	cmd.Flags().StringVar(&f.institution, "institution", "", "Institution")
}

// apply copies only the flags the user set onto team
func (f *teamFlags) apply(cmd *cobra.Command, team *model.Team) {
	set := func(flag string, dst *string, value string) {
		if cmd.Flags().Changed(flag) {
			*dst = value
		}
	}
	set("name", &team.Name, f.name)
	set("department", &team.Department, f.department)
	set("manager-name", &team.ManagerName, f.managerName)
	set("manager-contact", &team.ManagerContact, f.managerContact)
	set("institution", &team.Institution, f.institution)
}

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team management commands",
	}

	cmd.AddCommand(newTeamListCmd())
	cmd.AddCommand(newTeamShowCmd())
	cmd.AddCommand(newTeamCreateCmd())
	cmd.AddCommand(newTeamUpdateCmd())
	cmd.AddCommand(newTeamDeleteCmd())

	return cmd
}

func newTeamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := app.TeamService.ListTeams(cmd.Context())
			if err != nil {
				return err
			}
			output(cmd).Print(teams)
			return nil
		},
	}
}

func newTeamShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <team-id>",
		Short: "Show a team's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := app.TeamService.GetTeamByID(cmd.Context(), model.TeamID(args[0]))
			if err != nil {
				return err
			}
			output(cmd).Print(team)
			return nil
		},
	}
}

func newTeamCreateCmd() *cobra.Command {
	var flags teamFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new team (organizer)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOrganizer(cmd.Context()); err != nil {
				return err
			}

			var team model.Team
			flags.apply(cmd, &team)

			created, err := app.TeamService.CreateTeam(cmd.Context(), team)
			if err != nil {
				return err
			}
			output(cmd).Print(created)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTeamUpdateCmd() *cobra.Command {
	var flags teamFlags

	cmd := &cobra.Command{
		Use:   "update <team-id>",
		Short: "Update a team's profile (organizer or the team's operator)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.TeamID(args[0])
			if err := requireTeamManager(cmd.Context(), id); err != nil {
				return err
			}

			team, err := app.TeamService.GetTeamByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			flags.apply(cmd, team)

			if err := app.TeamService.SaveTeam(cmd.Context(), *team); err != nil {
				return err
			}
			output(cmd).Print(team)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newTeamDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <team-id>",
		Short: "Delete a team and its fixtures and registrations (organizer)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOrganizer(cmd.Context()); err != nil {
				return err
			}

			report, err := app.TeamService.DeleteTeamByID(cmd.Context(), model.TeamID(args[0]))
			if err != nil {
				return err
			}
			output(cmd).Print(response.CleanupReportFromModel(report))
			return nil
		},
	}
}
