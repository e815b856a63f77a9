package fixtures

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/tourneytrack/internal/collection"
	"github.com/mcoot/tourneytrack/internal/dependencies/clock"
	"github.com/mcoot/tourneytrack/internal/dependencies/random"
	"github.com/mcoot/tourneytrack/internal/metrics"
	"github.com/mcoot/tourneytrack/internal/model"
)

const (
	// DefaultUpcomingLimit is the page size for Upcoming when none is given
	DefaultUpcomingLimit = 5
	// DefaultResultsLimit is the page size for Results when none is given
	DefaultResultsLimit = 10
)

// Config holds scheduling rules
type Config struct {
	// ConflictWindow is how close two unplayed fixtures of the same team may
	// be scheduled. Zero disables the check.
	ConflictWindow time.Duration
	// RequireRegistration rejects fixtures between teams that are not both
	// registered for the named tournament
	RequireRegistration bool
}

// DefaultConfig returns the default scheduling rules
func DefaultConfig() Config {
	return Config{
		ConflictWindow:      2 * time.Hour,
		RequireRegistration: false,
	}
}

// FixtureInput is the data needed to schedule a fixture
type FixtureInput struct {
	Tournament string
	HomeID     model.TeamID
	AwayID     model.TeamID
	DateISO    string
	Venue      string
}

func (in FixtureInput) missingFields() bool {
	return strings.TrimSpace(in.Tournament) == "" ||
		strings.TrimSpace(string(in.HomeID)) == "" ||
		strings.TrimSpace(string(in.AwayID)) == "" ||
		strings.TrimSpace(in.DateISO) == ""
}

// Service schedules fixtures, records results and answers fixture queries
type Service struct {
	store  *collection.Store
	clock  clock.Clock
	random random.Random
	cfg    Config
	logger *slog.Logger
}

// New creates a new fixture service
func New(store *collection.Store, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clock,
		random: random,
		cfg:    cfg,
		logger: logger,
	}
}

// AddFixture schedules a new unplayed fixture. Nothing is written when the
// input is rejected.
func (s *Service) AddFixture(ctx context.Context, in FixtureInput) (*model.Fixture, error) {
	fixture, err := s.addFixture(ctx, in)
	metrics.ObserveMutation("add_fixture", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fixture scheduled",
		slog.String("fixture_id", string(fixture.ID)),
		slog.String("tournament", fixture.Tournament),
		slog.String("home_id", string(fixture.HomeID)),
		slog.String("away_id", string(fixture.AwayID)),
		slog.String("date", fixture.DateISO),
	)
	return fixture, nil
}

func (s *Service) addFixture(ctx context.Context, in FixtureInput) (*model.Fixture, error) {
	if in.missingFields() {
		return nil, model.ErrMissingFixtureFields
	}
	if in.HomeID == in.AwayID {
		return nil, model.ErrSameTeam
	}
	scheduled, err := model.ParseDate(in.DateISO)
	if err != nil {
		return nil, err
	}

	fixture := model.Fixture{
		ID:         model.FixtureID("F" + s.random.UUID()),
		Tournament: strings.TrimSpace(in.Tournament),
		HomeID:     in.HomeID,
		AwayID:     in.AwayID,
		DateISO:    strings.TrimSpace(in.DateISO),
		Venue:      strings.TrimSpace(in.Venue),
		Played:     false,
	}

	err = s.store.Exclusive(func() error {
		teams, err := s.store.Teams(ctx)
		if err != nil {
			return err
		}
		existing := model.NewTeamSet(teams)
		if !existing.Has(in.HomeID) || !existing.Has(in.AwayID) {
			return model.ErrTeamNotFound
		}

		if s.cfg.RequireRegistration {
			regs, err := s.store.Registrations(ctx)
			if err != nil {
				return err
			}
			if !regs.Contains(fixture.Tournament, in.HomeID) || !regs.Contains(fixture.Tournament, in.AwayID) {
				return model.ErrNotRegistered
			}
		}

		fixtures, err := s.store.Fixtures(ctx)
		if err != nil {
			return err
		}
		if s.conflicts(fixtures, fixture, scheduled) {
			return model.ErrScheduleConflict
		}
		if s.venueBooked(fixtures, fixture, scheduled) {
			return model.ErrVenueConflict
		}

		return s.store.SaveFixtures(ctx, append(fixtures, fixture))
	})
	if err != nil {
		return nil, err
	}
	return &fixture, nil
}

// conflicts reports whether either team already has an unplayed fixture
// scheduled within the conflict window of the new one
func (s *Service) conflicts(fixtures []model.Fixture, candidate model.Fixture, at time.Time) bool {
	if s.cfg.ConflictWindow <= 0 {
		return false
	}
	for i := range fixtures {
		f := &fixtures[i]
		if f.Played {
			continue
		}
		if !f.Involves(candidate.HomeID) && !f.Involves(candidate.AwayID) {
			continue
		}
		other, ok := f.ScheduledAt()
		if !ok {
			continue
		}
		if absDuration(other.Sub(at)) < s.cfg.ConflictWindow {
			return true
		}
	}
	return false
}

// venueBooked reports whether another unplayed fixture uses the same venue
// within the conflict window of the new one, or at exactly the same time
// when the window is disabled. Fixtures without a venue never clash.
func (s *Service) venueBooked(fixtures []model.Fixture, candidate model.Fixture, at time.Time) bool {
	if candidate.Venue == "" {
		return false
	}
	for i := range fixtures {
		f := &fixtures[i]
		if f.Played || !strings.EqualFold(strings.TrimSpace(f.Venue), candidate.Venue) {
			continue
		}
		other, ok := f.ScheduledAt()
		if !ok {
			continue
		}
		gap := absDuration(other.Sub(at))
		if gap == 0 || gap < s.cfg.ConflictWindow {
			return true
		}
	}
	return false
}

// RecordResult marks the fixture played with the given scores. Recording
// again overwrites the previous scores. An unknown id leaves storage
// untouched.
func (s *Service) RecordResult(ctx context.Context, id model.FixtureID, home, away model.Score) (*model.Fixture, error) {
	var recorded model.Fixture
	err := s.store.Exclusive(func() error {
		if home < 0 || away < 0 {
			return model.ErrInvalidScore
		}
		fixtures, err := s.store.Fixtures(ctx)
		if err != nil {
			return err
		}
		idx := model.FindFixture(fixtures, id)
		if idx < 0 {
			return model.ErrFixtureNotFound
		}

		fixtures[idx].Played = true
		fixtures[idx].Home = &home
		fixtures[idx].Away = &away
		recorded = fixtures[idx]

		return s.store.SaveFixtures(ctx, fixtures)
	})
	metrics.ObserveMutation("record_result", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("result recorded",
		slog.String("fixture_id", string(id)),
		slog.Int("home", int(home)),
		slog.Int("away", int(away)),
	)
	return &recorded, nil
}

// GetFixture returns the fixture with the given id
func (s *Service) GetFixture(ctx context.Context, id model.FixtureID) (*model.Fixture, error) {
	fixtures, err := s.store.Fixtures(ctx)
	if err != nil {
		return nil, err
	}
	idx := model.FindFixture(fixtures, id)
	if idx < 0 {
		return nil, model.ErrFixtureNotFound
	}
	return &fixtures[idx], nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
