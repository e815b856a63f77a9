package model

// Role distinguishes the two kinds of actor that can log in
type Role string

const (
	RoleTeam      Role = "team"      // operator of a single team
	RoleOrganizer Role = "organizer" // tournament administrator
)

// Session is the single current logged-in actor
type Session struct {
	Role   Role   `json:"role"`
	TeamID TeamID `json:"teamId,omitempty"`
}

// IsOrganizer reports whether the session has organizer rights
func (s *Session) IsOrganizer() bool {
	return s != nil && s.Role == RoleOrganizer
}

// OwnsTeam reports whether the session is the operator of the given team
func (s *Session) OwnsTeam(id TeamID) bool {
	return s != nil && s.Role == RoleTeam && s.TeamID == id
}
