package integrity

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mcoot/tourneytrack/internal/collection"
	"github.com/mcoot/tourneytrack/internal/metrics"
	"github.com/mcoot/tourneytrack/internal/model"
)

// Report summarizes what a cleanup pass removed
type Report struct {
	FixturesRemoved      int `json:"fixtures_removed"`
	RegistrationsRemoved int `json:"registrations_removed"`
}

// Changed reports whether the pass modified anything
func (r Report) Changed() bool {
	return r.FixturesRemoved > 0 || r.RegistrationsRemoved > 0
}

// Service restores referential integrity between teams and the
// collections that reference them. References are repaired after the
// fact, so between a team deletion and the next CleanupOrphans call stale
// fixtures and registrations may still be stored.
type Service struct {
	store  *collection.Store
	logger *slog.Logger
}

// New creates a new integrity service
func New(store *collection.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// CleanupOrphans drops fixtures whose home or away team is gone and removes
// unknown team ids from every tournament's registration list. Running it
// again without intervening deletes changes nothing.
func (s *Service) CleanupOrphans(ctx context.Context) (Report, error) {
	var report Report
	err := s.store.Exclusive(func() error {
		teams, err := s.store.Teams(ctx)
		if err != nil {
			return err
		}
		existing := model.NewTeamSet(teams)

		fixtures, err := s.store.Fixtures(ctx)
		if err != nil {
			return err
		}
		kept := slices.DeleteFunc(slices.Clone(fixtures), func(f model.Fixture) bool {
			return !existing.Has(f.HomeID) || !existing.Has(f.AwayID)
		})
		report.FixturesRemoved = len(fixtures) - len(kept)
		if report.FixturesRemoved > 0 {
			if err := s.store.SaveFixtures(ctx, kept); err != nil {
				return err
			}
		}

		regs, err := s.store.Registrations(ctx)
		if err != nil {
			return err
		}
		for tournament, ids := range regs {
			pruned := slices.DeleteFunc(slices.Clone(ids), func(id model.TeamID) bool {
				return !existing.Has(id)
			})
			if removed := len(ids) - len(pruned); removed > 0 {
				report.RegistrationsRemoved += removed
				regs[tournament] = pruned
			}
		}
		if report.RegistrationsRemoved > 0 {
			if err := s.store.SaveRegistrations(ctx, regs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	metrics.ObserveCleanup(report.FixturesRemoved, report.RegistrationsRemoved)
	if report.Changed() {
		s.logger.Info("removed orphaned references",
			slog.Int("fixtures", report.FixturesRemoved),
			slog.Int("registrations", report.RegistrationsRemoved),
		)
	}
	return report, nil
}
