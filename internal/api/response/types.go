package response

import (
	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/fixtures"
	"github.com/mcoot/tourneytrack/internal/services/integrity"
)

// Session represents the current actor in API responses
type Session struct {
	LoggedIn bool   `json:"logged_in"`
	Role     string `json:"role,omitempty"`
	TeamID   string `json:"team_id,omitempty"`
	// Token is only set on login responses
	Token string `json:"token,omitempty"`
}

// SessionFromModel converts a model.Session; nil means logged out
func SessionFromModel(s *model.Session) Session {
	if s == nil {
		return Session{}
	}
	return Session{
		LoggedIn: true,
		Role:     string(s.Role),
		TeamID:   string(s.TeamID),
	}
}

// Fixture represents a fixture with its team names resolved
type Fixture struct {
	model.Fixture
	HomeName string `json:"homeName"`
	AwayName string `json:"awayName"`
	Winner   string `json:"winner,omitempty"`
}

// FixtureFromModel resolves team names through names, falling back to
// model.UnknownTeamName
func FixtureFromModel(f model.Fixture, names map[model.TeamID]string) Fixture {
	return Fixture{
		Fixture:  f,
		HomeName: nameOf(names, f.HomeID),
		AwayName: nameOf(names, f.AwayID),
		Winner:   string(f.Winner()),
	}
}

// FixturesFromModel converts a list, never returning nil
func FixturesFromModel(list []model.Fixture, names map[model.TeamID]string) []Fixture {
	out := make([]Fixture, len(list))
	for i, f := range list {
		out[i] = FixtureFromModel(f, names)
	}
	return out
}

func nameOf(names map[model.TeamID]string, id model.TeamID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return model.UnknownTeamName
}

// TeamNames indexes team names by id
func TeamNames(teams []model.Team) map[model.TeamID]string {
	names := make(map[model.TeamID]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names
}

// TeamSchedule is one team's upcoming and completed fixtures
type TeamSchedule struct {
	TeamID    string             `json:"team_id"`
	Upcoming  []ScheduledFixture `json:"upcoming"`
	Completed []ScheduledFixture `json:"completed"`
}

// ScheduledFixture is a fixture seen from one team's side
type ScheduledFixture struct {
	Fixture
	Opponent string `json:"opponent"`
}

// TeamScheduleFromModel converts a fixtures.TeamSchedule for teamID
func TeamScheduleFromModel(teamID model.TeamID, s *fixtures.TeamSchedule, names map[model.TeamID]string) TeamSchedule {
	return TeamSchedule{
		TeamID:    string(teamID),
		Upcoming:  scheduled(teamID, s.Upcoming, names),
		Completed: scheduled(teamID, s.Completed, names),
	}
}

func scheduled(teamID model.TeamID, list []model.Fixture, names map[model.TeamID]string) []ScheduledFixture {
	out := make([]ScheduledFixture, len(list))
	for i := range list {
		out[i] = ScheduledFixture{
			Fixture:  FixtureFromModel(list[i], names),
			Opponent: nameOf(names, list[i].Opponent(teamID)),
		}
	}
	return out
}

// Registration answers whether a team takes part in a tournament
type Registration struct {
	Tournament string `json:"tournament"`
	TeamID     string `json:"team_id"`
	Registered bool   `json:"registered"`
}

// TeamRecord is a team's tally, optionally scoped to one tournament
type TeamRecord struct {
	TeamID     string `json:"team_id"`
	Tournament string `json:"tournament,omitempty"`
	fixtures.TeamRecord
}

// Tournament summarises one tournament's registrations
type Tournament struct {
	Name  string   `json:"name"`
	Teams []string `json:"teams"`
}

// CleanupReport is what a cascade cleanup removed
type CleanupReport struct {
	FixturesRemoved      int `json:"fixtures_removed"`
	RegistrationsRemoved int `json:"registrations_removed"`
}

// CleanupReportFromModel converts an integrity.Report
func CleanupReportFromModel(r integrity.Report) CleanupReport {
	return CleanupReport{
		FixturesRemoved:      r.FixturesRemoved,
		RegistrationsRemoved: r.RegistrationsRemoved,
	}
}

// TeamIDs converts ids to plain strings, never returning nil
func TeamIDs(ids []model.TeamID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
