package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
)

func newRecordCmd() *cobra.Command {
	var tournament string

	cmd := &cobra.Command{
		Use:   "record <team-id>",
		Short: "Show a team's win/loss/draw record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := app.FixtureService.Record(cmd.Context(), model.TeamID(args[0]), tournament)
			if err != nil {
				return err
			}
			output(cmd).Print(response.TeamRecord{
				TeamID:     args[0],
				Tournament: tournament,
				TeamRecord: *record,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&tournament, "tournament", "", "Only count fixtures in this tournament")
	return cmd
}

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove fixtures and registrations that refer to deleted teams (organizer)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOrganizer(cmd.Context()); err != nil {
				return err
			}
			report, err := app.IntegrityService.CleanupOrphans(cmd.Context())
			if err != nil {
				return err
			}
			output(cmd).Print(response.CleanupReportFromModel(report))
			return nil
		},
	}
}
