package registration

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/mcoot/tourneytrack/internal/collection"
	"github.com/mcoot/tourneytrack/internal/metrics"
	"github.com/mcoot/tourneytrack/internal/model"
)

// Service manages which teams take part in which tournament
type Service struct {
	store  *collection.Store
	logger *slog.Logger
}

// New creates a new registration service
func New(store *collection.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Tournaments returns every tournament name that has a registration list,
// sorted
func (s *Service) Tournaments(ctx context.Context) ([]string, error) {
	regs, err := s.store.Registrations(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(regs))
	for name := range regs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// TournamentTeams returns the ids registered for a tournament, in
// registration order. An unknown tournament has no teams.
func (s *Service) TournamentTeams(ctx context.Context, tournament string) ([]model.TeamID, error) {
	regs, err := s.store.Registrations(ctx)
	if err != nil {
		return nil, err
	}
	ids := regs[strings.TrimSpace(tournament)]
	if ids == nil {
		return []model.TeamID{}, nil
	}
	return ids, nil
}

// IsRegistered reports whether the team takes part in the tournament
func (s *Service) IsRegistered(ctx context.Context, tournament string, teamID model.TeamID) (bool, error) {
	regs, err := s.store.Registrations(ctx)
	if err != nil {
		return false, err
	}
	return regs.Contains(strings.TrimSpace(tournament), teamID), nil
}

// RegisterTeam adds an existing team to a tournament
func (s *Service) RegisterTeam(ctx context.Context, tournament string, teamID model.TeamID) error {
	tournament = strings.TrimSpace(tournament)
	if tournament == "" {
		return model.ErrInvalidTournament
	}

	err := s.store.Exclusive(func() error {
		teams, err := s.store.Teams(ctx)
		if err != nil {
			return err
		}
		if model.FindTeam(teams, teamID) == nil {
			return model.ErrTeamNotFound
		}

		regs, err := s.store.Registrations(ctx)
		if err != nil {
			return err
		}
		if regs.Contains(tournament, teamID) {
			return model.ErrAlreadyRegistered
		}
		regs[tournament] = append(regs[tournament], teamID)
		return s.store.SaveRegistrations(ctx, regs)
	})
	metrics.ObserveMutation("register_team", err)
	if err != nil {
		return err
	}

	s.logger.Info("team registered",
		slog.String("tournament", tournament),
		slog.String("team_id", string(teamID)),
	)
	return nil
}

// UnregisterTeam removes a team from a tournament. A tournament left with
// no teams is dropped from the map.
func (s *Service) UnregisterTeam(ctx context.Context, tournament string, teamID model.TeamID) error {
	tournament = strings.TrimSpace(tournament)

	err := s.store.Exclusive(func() error {
		regs, err := s.store.Registrations(ctx)
		if err != nil {
			return err
		}
		if !regs.Contains(tournament, teamID) {
			return model.ErrNotRegistered
		}
		remaining := slices.DeleteFunc(regs[tournament], func(id model.TeamID) bool {
			return id == teamID
		})
		if len(remaining) == 0 {
			delete(regs, tournament)
		} else {
			regs[tournament] = remaining
		}
		return s.store.SaveRegistrations(ctx, regs)
	})
	metrics.ObserveMutation("unregister_team", err)
	return err
}
