package teams

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/tourneytrack/internal/collection"
	"github.com/mcoot/tourneytrack/internal/dependencies/random"
	"github.com/mcoot/tourneytrack/internal/metrics"
	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/integrity"
)

const (
	// TeamIDLength is the number of random characters after the "T" prefix
	TeamIDLength = 6
	// TeamIDAlphabet avoids characters that are easily confused
	TeamIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Service manages the team collection
type Service struct {
	store     *collection.Store
	integrity *integrity.Service
	random    random.Random
	logger    *slog.Logger
}

// New creates a new team service
func New(store *collection.Store, integrity *integrity.Service, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		integrity: integrity,
		random:    random,
		logger:    logger,
	}
}

// ListTeams returns every team in insertion order
func (s *Service) ListTeams(ctx context.Context) ([]model.Team, error) {
	return s.store.Teams(ctx)
}

// GetTeamByID returns the team with the given id
func (s *Service) GetTeamByID(ctx context.Context, id model.TeamID) (*model.Team, error) {
	teams, err := s.store.Teams(ctx)
	if err != nil {
		return nil, err
	}
	team := model.FindTeam(teams, id)
	if team == nil {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}

// GetTeamName returns the team's name, or model.UnknownTeamName when the
// team does not exist. Only backend failures are returned as errors.
func (s *Service) GetTeamName(ctx context.Context, id model.TeamID) (string, error) {
	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTeamNotFound) {
			return model.UnknownTeamName, nil
		}
		return "", err
	}
	return team.Name, nil
}

// FixtureNames resolves both sides of a fixture through GetTeamName
func (s *Service) FixtureNames(ctx context.Context, f *model.Fixture) (map[model.TeamID]string, error) {
	names := make(map[model.TeamID]string, 2)
	for _, id := range []model.TeamID{f.HomeID, f.AwayID} {
		name, err := s.GetTeamName(ctx, id)
		if err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, nil
}

// SaveTeam upserts by id: an existing team with the same id is replaced in
// place, otherwise the team is appended. Profile fields are stored as given.
func (s *Service) SaveTeam(ctx context.Context, team model.Team) error {
	if team.ID == "" {
		return model.ErrInvalidTeam
	}
	err := s.store.Exclusive(func() error {
		return s.upsert(ctx, team)
	})
	metrics.ObserveMutation("save_team", err)
	return err
}

// CreateTeam assigns a fresh id to the team and saves it
func (s *Service) CreateTeam(ctx context.Context, team model.Team) (*model.Team, error) {
	err := s.store.Exclusive(func() error {
		teams, err := s.store.Teams(ctx)
		if err != nil {
			return err
		}
		existing := model.NewTeamSet(teams)

		// Generate unique team id
		for {
			team.ID = model.TeamID("T" + s.random.String(TeamIDLength, TeamIDAlphabet))
			if !existing.Has(team.ID) {
				break
			}
		}

		return s.store.SaveTeams(ctx, append(teams, team))
	})
	metrics.ObserveMutation("create_team", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("team created", slog.String("team_id", string(team.ID)), slog.String("name", team.Name))
	return &team, nil
}

// DeleteTeamByID removes the team and then runs the cascade cleanup so no
// fixture or registration keeps referring to it. This is the only way teams
// are deleted. Deleting an unknown id still runs the cleanup.
func (s *Service) DeleteTeamByID(ctx context.Context, id model.TeamID) (integrity.Report, error) {
	err := s.store.Exclusive(func() error {
		teams, err := s.store.Teams(ctx)
		if err != nil {
			return err
		}
		remaining := make([]model.Team, 0, len(teams))
		for _, t := range teams {
			if t.ID != id {
				remaining = append(remaining, t)
			}
		}
		if len(remaining) == len(teams) {
			return nil
		}
		return s.store.SaveTeams(ctx, remaining)
	})
	metrics.ObserveMutation("delete_team", err)
	if err != nil {
		return integrity.Report{}, err
	}

	report, err := s.integrity.CleanupOrphans(ctx)
	if err != nil {
		return integrity.Report{}, err
	}

	s.logger.Info("team deleted",
		slog.String("team_id", string(id)),
		slog.Int("fixtures_removed", report.FixturesRemoved),
		slog.Int("registrations_removed", report.RegistrationsRemoved),
	)
	return report, nil
}

func (s *Service) upsert(ctx context.Context, team model.Team) error {
	teams, err := s.store.Teams(ctx)
	if err != nil {
		return err
	}
	if existing := model.FindTeam(teams, team.ID); existing != nil {
		*existing = team
	} else {
		teams = append(teams, team)
	}
	return s.store.SaveTeams(ctx, teams)
}
