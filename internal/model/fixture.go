package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FixtureID uniquely identifies a fixture
type FixtureID string

// Fixture is a scheduled or completed match between two teams.
// Home and Away are only set once the fixture has been played.
type Fixture struct {
	ID         FixtureID `json:"id"`
	Tournament string    `json:"tournament"`
	HomeID     TeamID    `json:"homeId"`
	AwayID     TeamID    `json:"awayId"`
	DateISO    string    `json:"dateISO"`
	Venue      string    `json:"venue,omitempty"`
	Played     bool      `json:"played"`
	Home       *Score    `json:"home,omitempty"`
	Away       *Score    `json:"away,omitempty"`
}

// ScheduledAt parses the fixture date. ok is false when the stored date
// cannot be parsed.
func (f *Fixture) ScheduledAt() (t time.Time, ok bool) {
	t, err := ParseDate(f.DateISO)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Involves reports whether the team plays in this fixture
func (f *Fixture) Involves(id TeamID) bool {
	return f.HomeID == id || f.AwayID == id
}

// Opponent returns the other side of the fixture for the given team,
// or an empty id when the team does not play in it
func (f *Fixture) Opponent(id TeamID) TeamID {
	switch id {
	case f.HomeID:
		return f.AwayID
	case f.AwayID:
		return f.HomeID
	}
	return ""
}

// Winner returns the winning team, or an empty id for a draw or an
// unplayed fixture
func (f *Fixture) Winner() TeamID {
	if !f.Played || f.Home == nil || f.Away == nil {
		return ""
	}
	switch {
	case *f.Home > *f.Away:
		return f.HomeID
	case *f.Away > *f.Home:
		return f.AwayID
	}
	return ""
}

// FindFixture returns the index of the fixture with the given id, or -1
func FindFixture(fixtures []Fixture, id FixtureID) int {
	for i := range fixtures {
		if fixtures[i].ID == id {
			return i
		}
	}
	return -1
}

// Score is a goal/point count. It decodes from either a JSON number or a
// numeric string so that form-style payloads ("2") are accepted.
type Score int

// UnmarshalJSON accepts 2, 2.0 and "2"
func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	n, err := ParseScore(raw)
	if err != nil {
		return err
	}
	*s = n
	return nil
}

// MarshalJSON encodes the score as a plain number
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(s))
}

// ParseScore coerces a textual score to a number. Whole-valued decimals
// such as "2.0" are accepted.
func ParseScore(raw string) (Score, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return Score(n), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, raw)
	}
	return Score(int(f)), nil
}

// ScorePtr is a convenience for building played fixtures
func ScorePtr(n int) *Score {
	s := Score(n)
	return &s
}
