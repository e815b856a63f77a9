package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/fixtures"
)

func newFixtureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Fixture scheduling and results commands",
	}

	cmd.AddCommand(newFixtureShowCmd())
	cmd.AddCommand(newFixtureAddCmd())
	cmd.AddCommand(newFixtureResultCmd())
	cmd.AddCommand(newFixtureUpcomingCmd())
	cmd.AddCommand(newFixtureResultsCmd())
	cmd.AddCommand(newFixtureTeamCmd())

	return cmd
}

func newFixtureShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <fixture-id>",
		Short: "Show one fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := app.FixtureService.GetFixture(cmd.Context(), model.FixtureID(args[0]))
			if err != nil {
				return err
			}
			names, err := app.TeamService.FixtureNames(cmd.Context(), fixture)
			if err != nil {
				return err
			}
			output(cmd).Print(response.FixtureFromModel(*fixture, names))
			return nil
		},
	}
}

func newFixtureAddCmd() *cobra.Command {
	var in struct {
		tournament, home, away, date, venue string
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a fixture (organizer)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOrganizer(cmd.Context()); err != nil {
				return err
			}

			fixture, err := app.FixtureService.AddFixture(cmd.Context(), fixtures.FixtureInput{
				Tournament: in.tournament,
				HomeID:     model.TeamID(in.home),
				AwayID:     model.TeamID(in.away),
				DateISO:    in.date,
				Venue:      in.venue,
			})
			if err != nil {
				return err
			}
			return printFixtures(cmd, *fixture)
		},
	}

	cmd.Flags().StringVar(&in.tournament, "tournament", "", "Tournament name (required)")
	cmd.Flags().StringVar(&in.home, "home", "", "Home team id (required)")
	cmd.Flags().StringVar(&in.away, "away", "", "Away team id (required)")
	cmd.Flags().StringVar(&in.date, "date", "", "Kick-off, e.g. 2030-01-01 or 2030-01-01T15:00 (required)")
	cmd.Flags().StringVar(&in.venue, "venue", "", "Venue")

	return cmd
}

func newFixtureResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <fixture-id> <home-score> <away-score>",
		Short: "Record a fixture's final score (organizer)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOrganizer(cmd.Context()); err != nil {
				return err
			}

			home, err := model.ParseScore(args[1])
			if err != nil {
				return err
			}
			away, err := model.ParseScore(args[2])
			if err != nil {
				return err
			}

			fixture, err := app.FixtureService.RecordResult(cmd.Context(), model.FixtureID(args[0]), home, away)
			if err != nil {
				return err
			}
			return printFixtures(cmd, *fixture)
		},
	}
}

func newFixtureUpcomingCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List the next unplayed fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.FixtureService.Upcoming(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printFixtures(cmd, list...)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", fixtures.DefaultUpcomingLimit, "Maximum fixtures to show")
	return cmd
}

func newFixtureResultsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List the most recent results",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.FixtureService.Results(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printFixtures(cmd, list...)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", fixtures.DefaultResultsLimit, "Maximum results to show")
	return cmd
}

func newFixtureTeamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team <team-id>",
		Short: "Show one team's upcoming and completed fixtures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := app.FixtureService.TeamFixtures(cmd.Context(), model.TeamID(args[0]))
			if err != nil {
				return err
			}
			names, err := teamNames(cmd.Context())
			if err != nil {
				return err
			}
			output(cmd).Print(response.TeamScheduleFromModel(model.TeamID(args[0]), schedule, names))
			return nil
		},
	}
}

func printFixtures(cmd *cobra.Command, list ...model.Fixture) error {
	names, err := teamNames(cmd.Context())
	if err != nil {
		return err
	}
	output(cmd).Print(response.FixturesFromModel(list, names))
	return nil
}

func teamNames(ctx context.Context) (map[model.TeamID]string, error) {
	teams, err := app.TeamService.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	return response.TeamNames(teams), nil
}
