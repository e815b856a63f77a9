package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Session:
		o.printSession(v)
	case *model.Team:
		o.printTeam(v)
	case []model.Team:
		o.printTeams(v)
	case response.Fixture:
		o.printFixtures([]response.Fixture{v})
	case []response.Fixture:
		o.printFixtures(v)
	case response.TeamSchedule:
		o.printSchedule(v)
	case response.TeamRecord:
		o.printRecord(v)
	case response.Tournament:
		o.printTournament(v)
	case []response.Tournament:
		for _, t := range v {
			o.printTournament(t)
		}
	case response.Registration:
		verb := "is not"
		if v.Registered {
			verb = "is"
		}
		fmt.Fprintf(o.w, "%s %s registered for %s\n", v.TeamID, verb, v.Tournament)
	case response.CleanupReport:
		fmt.Fprintf(o.w, "Removed %d fixture(s) and %d registration(s)\n", v.FixturesRemoved, v.RegistrationsRemoved)
	case RemoteStatus:
		fmt.Fprintf(o.w, "Server: %s (%s)\n", v.Server, v.Health.Status)
		o.printSession(v.Session)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printSession(s response.Session) {
	switch {
	case !s.LoggedIn:
		fmt.Fprintln(o.w, "Not logged in")
	case s.TeamID != "":
		fmt.Fprintf(o.w, "Logged in as %s (team %s)\n", s.Role, s.TeamID)
	default:
		fmt.Fprintf(o.w, "Logged in as %s\n", s.Role)
	}
}

func (o *Output) printTeam(t *model.Team) {
	fmt.Fprintf(o.w, "Team: %s (%s)\n", t.Name, t.ID)
	if t.Institution != "" {
		fmt.Fprintf(o.w, "Institution: %s\n", t.Institution)
	}
	if t.Department != "" {
		fmt.Fprintf(o.w, "Department: %s\n", t.Department)
	}
	if t.ManagerName != "" || t.ManagerContact != "" {
		fmt.Fprintf(o.w, "Manager: %s %s\n", t.ManagerName, t.ManagerContact)
	}
	if len(t.Players) > 0 {
		fmt.Fprintf(o.w, "Players (%d):\n", len(t.Players))
		for _, p := range t.Players {
			fmt.Fprintf(o.w, "  - %s\n", p.Name)
		}
	}
}

func (o *Output) printTeams(teams []model.Team) {
	if len(teams) == 0 {
		fmt.Fprintln(o.w, "No teams")
		return
	}
	for _, t := range teams {
		fmt.Fprintf(o.w, "%-10s %s\n", t.ID, t.Name)
	}
}

func (o *Output) printFixtures(list []response.Fixture) {
	if len(list) == 0 {
		fmt.Fprintln(o.w, "No fixtures")
		return
	}
	for _, f := range list {
		line := fmt.Sprintf("%s  %s  %s vs %s", f.DateISO, f.Tournament, f.HomeName, f.AwayName)
		if f.Played && f.Home != nil && f.Away != nil {
			line += fmt.Sprintf("  %d-%d", *f.Home, *f.Away)
		}
		if f.Venue != "" {
			line += "  @ " + f.Venue
		}
		fmt.Fprintf(o.w, "%s  [%s]\n", line, f.ID)
	}
}

func (o *Output) printSchedule(s response.TeamSchedule) {
	fmt.Fprintln(o.w, "Upcoming:")
	o.printScheduled(s.Upcoming)
	fmt.Fprintln(o.w, "Completed:")
	o.printScheduled(s.Completed)
}

func (o *Output) printScheduled(list []response.ScheduledFixture) {
	if len(list) == 0 {
		fmt.Fprintln(o.w, "  none")
		return
	}
	for _, f := range list {
		line := fmt.Sprintf("  %s  %s  vs %s", f.DateISO, f.Tournament, f.Opponent)
		if f.Played && f.Home != nil && f.Away != nil {
			line += fmt.Sprintf("  %d-%d", *f.Home, *f.Away)
		}
		fmt.Fprintf(o.w, "%s  [%s]
", line, f.ID)
	}
}

func (o *Output) printRecord(r response.TeamRecord) {
	scope := "all tournaments"
	if r.Tournament != "" {
		scope = r.Tournament
	}
	fmt.Fprintf(o.w, "%s (%s): W%d L%d D%d of %d\n", r.TeamID, scope, r.Wins, r.Losses, r.Draws, r.Total)
}

func (o *Output) printTournament(t response.Tournament) {
	teams := "no teams"
	if len(t.Teams) > 0 {
		teams = strings.Join(t.Teams, ", ")
	}
	fmt.Fprintf(o.w, "%s: %s\n", t.Name, teams)
}
