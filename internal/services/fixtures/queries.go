package fixtures

import (
	"context"
	"slices"
	"time"

	"github.com/mcoot/tourneytrack/internal/model"
)

// TeamSchedule is one team's fixtures split by state
type TeamSchedule struct {
	Upcoming  []model.Fixture
	Completed []model.Fixture
}

// TeamRecord is a team's win/loss/draw tally over played fixtures
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
	Total  int `json:"total"`
}

// Upcoming returns at most limit unplayed fixtures scheduled at or after
// now between two existing teams, earliest first. Fixtures whose date
// cannot be parsed are never upcoming.
func (s *Service) Upcoming(ctx context.Context, limit int) ([]model.Fixture, error) {
	if limit <= 0 {
		return []model.Fixture{}, nil
	}
	fixtures, existing, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	upcoming := filterUpcoming(fixtures, existing, s.clock.Now())
	return truncate(upcoming, limit), nil
}

// Results returns at most limit played fixtures between two existing teams,
// most recent first
func (s *Service) Results(ctx context.Context, limit int) ([]model.Fixture, error) {
	if limit <= 0 {
		return []model.Fixture{}, nil
	}
	fixtures, existing, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	results := filterResults(fixtures, existing)
	return truncate(results, limit), nil
}

// TeamFixtures returns a team's upcoming and completed fixtures
func (s *Service) TeamFixtures(ctx context.Context, teamID model.TeamID) (*TeamSchedule, error) {
	fixtures, existing, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !existing.Has(teamID) {
		return nil, model.ErrTeamNotFound
	}

	own := slices.DeleteFunc(fixtures, func(f model.Fixture) bool {
		return !f.Involves(teamID)
	})
	return &TeamSchedule{
		Upcoming:  filterUpcoming(own, existing, s.clock.Now()),
		Completed: filterResults(own, existing),
	}, nil
}

// Record tallies a team's played fixtures. An empty tournament counts
// every tournament.
func (s *Service) Record(ctx context.Context, teamID model.TeamID, tournament string) (*TeamRecord, error) {
	fixtures, existing, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !existing.Has(teamID) {
		return nil, model.ErrTeamNotFound
	}

	var record TeamRecord
	for _, f := range fixtures {
		if !f.Played || !f.Involves(teamID) {
			continue
		}
		if tournament != "" && f.Tournament != tournament {
			continue
		}
		record.Total++
		switch f.Winner() {
		case teamID:
			record.Wins++
		case "":
			record.Draws++
		default:
			record.Losses++
		}
	}
	return &record, nil
}

func (s *Service) load(ctx context.Context) ([]model.Fixture, model.TeamSet, error) {
	teams, err := s.store.Teams(ctx)
	if err != nil {
		return nil, nil, err
	}
	fixtures, err := s.store.Fixtures(ctx)
	if err != nil {
		return nil, nil, err
	}
	return fixtures, model.NewTeamSet(teams), nil
}

// Both filters re-check team existence in case a cleanup has not yet run.

func filterUpcoming(fixtures []model.Fixture, existing model.TeamSet, now time.Time) []model.Fixture {
	type dated struct {
		fixture model.Fixture
		at      time.Time
	}
	var matches []dated
	for _, f := range fixtures {
		if f.Played || !existing.Has(f.HomeID) || !existing.Has(f.AwayID) {
			continue
		}
		at, ok := f.ScheduledAt()
		if !ok || at.Before(now) {
			continue
		}
		matches = append(matches, dated{f, at})
	}
	slices.SortStableFunc(matches, func(a, b dated) int {
		return a.at.Compare(b.at)
	})

	out := make([]model.Fixture, len(matches))
	for i, m := range matches {
		out[i] = m.fixture
	}
	return out
}

func filterResults(fixtures []model.Fixture, existing model.TeamSet) []model.Fixture {
	type dated struct {
		fixture model.Fixture
		at      time.Time
	}
	var matches []dated
	for _, f := range fixtures {
		if !f.Played || !existing.Has(f.HomeID) || !existing.Has(f.AwayID) {
			continue
		}
		// Unparsable dates sort as the zero time, i.e. last
		at, _ := f.ScheduledAt()
		matches = append(matches, dated{f, at})
	}
	slices.SortStableFunc(matches, func(a, b dated) int {
		return b.at.Compare(a.at)
	})

	out := make([]model.Fixture, len(matches))
	for i, m := range matches {
		out[i] = m.fixture
	}
	return out
}

func truncate(fixtures []model.Fixture, limit int) []model.Fixture {
	if len(fixtures) > limit {
		return fixtures[:limit]
	}
	return fixtures
}
