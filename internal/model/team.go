package model

import "strings"

// TeamID uniquely identifies a team across the system
type TeamID string

// UnknownTeamName is shown in place of a team that no longer exists
const UnknownTeamName = "Unknown team"

// Team is a registered side. Only ID and Name carry meaning for the store;
// the profile fields are kept as-is for the presentation layer.
type Team struct {
	ID             TeamID   `json:"id"`
	Name           string   `json:"name"`
	Department     string   `json:"department,omitempty"`
	ManagerName    string   `json:"manager_name,omitempty"`
	ManagerContact string   `json:"manager_contact,omitempty"`
	Institution    string   `json:"institution,omitempty"`
	Players        []Player `json:"players,omitempty"`
}

// Player is a roster entry on a team
type Player struct {
	Name       string `json:"name"`
	RollNumber int    `json:"roll_number,omitempty"`
	Contact    string `json:"contact,omitempty"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
}

// MatchesName reports whether name refers to this team, ignoring case and
// surrounding whitespace
func (t *Team) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(t.Name), strings.TrimSpace(name))
}

// FindTeam returns the team with the given id, or nil if not present
func FindTeam(teams []Team, id TeamID) *Team {
	for i := range teams {
		if teams[i].ID == id {
			return &teams[i]
		}
	}
	return nil
}

// TeamSet indexes team ids for existence checks
type TeamSet map[TeamID]struct{}

// NewTeamSet builds a TeamSet from a team collection
func NewTeamSet(teams []Team) TeamSet {
	set := make(TeamSet, len(teams))
	for _, t := range teams {
		set[t.ID] = struct{}{}
	}
	return set
}

// Has reports whether the id belongs to an existing team
func (s TeamSet) Has(id TeamID) bool {
	_, ok := s[id]
	return ok
}
