package model

import "slices"

// Registrations maps a tournament name to the teams taking part in it
type Registrations map[string][]TeamID

// Contains reports whether the team is registered for the tournament
func (r Registrations) Contains(tournament string, id TeamID) bool {
	return slices.Contains(r[tournament], id)
}

// Clone returns a deep copy
func (r Registrations) Clone() Registrations {
	out := make(Registrations, len(r))
	for name, ids := range r {
		out[name] = slices.Clone(ids)
	}
	return out
}
