package fixtures

import (
	"fmt"
	"time"

	"github.com/mcoot/tourneytrack/internal/model"
)

// SetupTest fixes the clock at 2025-06-01T12:00Z.

func (s *ServiceSuite) TestUpcomingOrderingAndLimit() {
	var seeded []model.Fixture
	for day := 9; day >= 2; day-- {
		seeded = append(seeded, model.Fixture{
			ID:      model.FixtureID(fmt.Sprintf("F%d", day)),
			HomeID:  "T1",
			AwayID:  "T2",
			DateISO: fmt.Sprintf("2025-06-%02d", day),
		})
	}
	s.seedFixtures(seeded...)

	upcoming, err := s.service.Upcoming(s.ctx, DefaultUpcomingLimit)
	s.Require().NoError(err)
	s.Require().Len(upcoming, 5)

	ids := make([]model.FixtureID, len(upcoming))
	for i, f := range upcoming {
		ids[i] = f.ID
	}
	s.Equal([]model.FixtureID{"F2", "F3", "F4", "F5", "F6"}, ids)
}

func (s *ServiceSuite) TestUpcomingExcludesPlayedPastAndUnparsable() {
	s.seedFixtures(
		model.Fixture{ID: "Fpast", HomeID: "T1", AwayID: "T2", DateISO: "2025-05-31"},
		model.Fixture{ID: "Fplayed", HomeID: "T1", AwayID: "T2", DateISO: "2025-07-01", Played: true, Home: model.ScorePtr(1), Away: model.ScorePtr(1)},
		model.Fixture{ID: "Fbad", HomeID: "T1", AwayID: "T2", DateISO: "soon"},
		model.Fixture{ID: "Fnow", HomeID: "T1", AwayID: "T2", DateISO: "2025-06-01T12:00:00Z"},
		model.Fixture{ID: "Flater", HomeID: "T1", AwayID: "T2", DateISO: "2025-06-02"},
	)

	upcoming, err := s.service.Upcoming(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(upcoming, 2)
	s.Equal(model.FixtureID("Fnow"), upcoming[0].ID)
	s.Equal(model.FixtureID("Flater"), upcoming[1].ID)
}

func (s *ServiceSuite) TestUpcomingExcludesMissingTeams() {
	s.seedFixtures(
		model.Fixture{ID: "F1", HomeID: "T1", AwayID: "T9", DateISO: "2025-06-02"},
		model.Fixture{ID: "F2", HomeID: "T1", AwayID: "T2", DateISO: "2025-06-03"},
	)

	upcoming, err := s.service.Upcoming(s.ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(upcoming, 1)
	s.Equal(model.FixtureID("F2"), upcoming[0].ID)
}

func (s *ServiceSuite) TestUpcomingFollowsClock() {
	s.seedFixtures(model.Fixture{ID: "F1", HomeID: "T1", AwayID: "T2", DateISO: "2025-06-02"})

	upcoming, _ := s.service.Upcoming(s.ctx, 5)
	s.Len(upcoming, 1)

	s.clock.Advance(48 * time.Hour)
	upcoming, _ = s.service.Upcoming(s.ctx, 5)
	s.Empty(upcoming)
}

func (s *ServiceSuite) TestNonPositiveLimit() {
	s.seedFixtures(model.Fixture{ID: "F1", HomeID: "T1", AwayID: "T2", DateISO: "2025-06-02"})

	upcoming, err := s.service.Upcoming(s.ctx, 0)
	s.Require().NoError(err)
	s.NotNil(upcoming)
	s.Empty(upcoming)

	results, err := s.service.Results(s.ctx, -1)
	s.Require().NoError(err)
	s.NotNil(results)
	s.Empty(results)
}

func (s *ServiceSuite) TestResultsMostRecentFirst() {
	var seeded []model.Fixture
	for day := 1; day <= 12; day++ {
		seeded = append(seeded, model.Fixture{
			ID:      model.FixtureID(fmt.Sprintf("F%d", day)),
			HomeID:  "T1",
			AwayID:  "T2",
			DateISO: fmt.Sprintf("2025-05-%02d", day),
			Played:  true,
			Home:    model.ScorePtr(day),
			Away:    model.ScorePtr(0),
		})
	}
	seeded = append(seeded, model.Fixture{ID: "Fopen", HomeID: "T1", AwayID: "T2", DateISO: "2025-05-20"})
	s.seedFixtures(seeded...)

	results, err := s.service.Results(s.ctx, DefaultResultsLimit)
	s.Require().NoError(err)
	s.Require().Len(results, 10)
	s.Equal(model.FixtureID("F12"), results[0].ID)
	s.Equal(model.FixtureID("F3"), results[9].ID)
	for _, f := range results {
		s.True(f.Played)
	}
}

func (s *ServiceSuite) TestResultsUnparsableDatesLast() {
	s.seedFixtures(
		model.Fixture{ID: "Fbad", HomeID: "T1", AwayID: "T2", DateISO: "whenever", Played: true, Home: model.ScorePtr(0), Away: model.ScorePtr(0)},
		model.Fixture{ID: "Fold", HomeID: "T1", AwayID: "T2", DateISO: "2020-01-01", Played: true, Home: model.ScorePtr(0), Away: model.ScorePtr(0)},
	)

	results, err := s.service.Results(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(model.FixtureID("Fold"), results[0].ID)
	s.Equal(model.FixtureID("Fbad"), results[1].ID)
}

func (s *ServiceSuite) TestResultsExcludeMissingTeams() {
	s.seedFixtures(
		model.Fixture{ID: "F1", HomeID: "T9", AwayID: "T2", DateISO: "2025-05-01", Played: true, Home: model.ScorePtr(1), Away: model.ScorePtr(0)},
	)

	results, err := s.service.Results(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(results)
}

func (s *ServiceSuite) TestTeamFixtures() {
	s.seedFixtures(
		model.Fixture{ID: "F1", HomeID: "T1", AwayID: "T2", DateISO: "2025-06-05"},
		model.Fixture{ID: "F2", HomeID: "T3", AwayID: "T1", DateISO: "2025-05-05", Played: true, Home: model.ScorePtr(2), Away: model.ScorePtr(2)},
		model.Fixture{ID: "F3", HomeID: "T2", AwayID: "T3", DateISO: "2025-06-06"},
	)

	schedule, err := s.service.TeamFixtures(s.ctx, "T1")
	s.Require().NoError(err)
	s.Require().Len(schedule.Upcoming, 1)
	s.Equal(model.FixtureID("F1"), schedule.Upcoming[0].ID)
	s.Require().Len(schedule.Completed, 1)
	s.Equal(model.FixtureID("F2"), schedule.Completed[0].ID)

	// Querying must not disturb the stored collection
	s.Len(s.storedFixtures(), 3)
}

func (s *ServiceSuite) TestTeamFixturesUnknownTeam() {
	_, err := s.service.TeamFixtures(s.ctx, "T9")
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *ServiceSuite) TestRecord() {
	played := func(id, home, away, tournament string, h, a int) model.Fixture {
		return model.Fixture{
			ID: model.FixtureID(id), Tournament: tournament,
			HomeID: model.TeamID(home), AwayID: model.TeamID(away),
			DateISO: "2025-05-01", Played: true,
			Home: model.ScorePtr(h), Away: model.ScorePtr(a),
		}
	}
	s.seedFixtures(
		played("F1", "T1", "T2", "Cup", 3, 1),
		played("F2", "T2", "T1", "Cup", 2, 0),
		played("F3", "T1", "T3", "League", 1, 1),
		played("F4", "T2", "T3", "League", 5, 0),
		model.Fixture{ID: "F5", Tournament: "Cup", HomeID: "T1", AwayID: "T3", DateISO: "2025-07-01"},
	)

	record, err := s.service.Record(s.ctx, "T1", "")
	s.Require().NoError(err)
	s.Equal(TeamRecord{Wins: 1, Losses: 1, Draws: 1, Total: 3}, *record)

	record, err = s.service.Record(s.ctx, "T1", "Cup")
	s.Require().NoError(err)
	s.Equal(TeamRecord{Wins: 1, Losses: 1, Draws: 0, Total: 2}, *record)

	_, err = s.service.Record(s.ctx, "T9", "")
	s.ErrorIs(err, model.ErrTeamNotFound)
}
