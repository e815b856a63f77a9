package request

import "github.com/mcoot/tourneytrack/internal/model"

// TeamLoginRequest is the request body for logging in as a team operator
type TeamLoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// OrganizerLoginRequest is the request body for logging in as the organizer
type OrganizerLoginRequest struct {
	Password string `json:"password"`
}

// TeamRequest is the request body for creating or updating a team
type TeamRequest struct {
	Name           string         `json:"name"`
	Department     string         `json:"department,omitempty"`
	ManagerName    string         `json:"manager_name,omitempty"`
	ManagerContact string         `json:"manager_contact,omitempty"`
	Institution    string         `json:"institution,omitempty"`
	Players        []model.Player `json:"players,omitempty"`
}

// ToModel builds a team with the given id from the request
func (r TeamRequest) ToModel(id model.TeamID) model.Team {
	return model.Team{
		ID:             id,
		Name:           r.Name,
		Department:     r.Department,
		ManagerName:    r.ManagerName,
		ManagerContact: r.ManagerContact,
		Institution:    r.Institution,
		Players:        r.Players,
	}
}

// AddFixtureRequest is the request body for scheduling a fixture
type AddFixtureRequest struct {
	Tournament string `json:"tournament"`
	HomeID     string `json:"homeId"`
	AwayID     string `json:"awayId"`
	DateISO    string `json:"dateISO"`
	Venue      string `json:"venue,omitempty"`
}

// RecordResultRequest is the request body for recording a result. Scores
// may be sent as numbers or numeric strings.
type RecordResultRequest struct {
	Home *model.Score `json:"home"`
	Away *model.Score `json:"away"`
}

// RegisterTeamRequest is the request body for registering a team in a
// tournament
type RegisterTeamRequest struct {
	TeamID string `json:"team_id"`
}
