package collection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/storage"
)

// Store gives typed access to the tournament collections. Every mutation
// is a full read-modify-write of one collection; Exclusive serializes those
// sequences within a process. Writers in other processes are not
// coordinated and the last write wins.
type Store struct {
	storage storage.Storage
	logger  *slog.Logger

	mu sync.Mutex
}

// NewStore creates a Store over the given backend
func NewStore(s storage.Storage, logger *slog.Logger) *Store {
	return &Store{
		storage: s,
		logger:  logger,
	}
}

// Exclusive runs fn while holding the store's write lock. fn must not call
// Exclusive itself.
func (s *Store) Exclusive(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// Teams returns the team collection, empty when absent or corrupt
func (s *Store) Teams(ctx context.Context) ([]model.Team, error) {
	res, err := Load(ctx, s.storage, KeyTeams, []model.Team{})
	s.report(KeyTeams, res.State, res.DecodeErr)
	if res.Value == nil {
		res.Value = []model.Team{}
	}
	return res.Value, err
}

// SaveTeams overwrites the team collection
func (s *Store) SaveTeams(ctx context.Context, teams []model.Team) error {
	return Save(ctx, s.storage, KeyTeams, nonNil(teams))
}

// Fixtures returns the fixture collection, empty when absent or corrupt
func (s *Store) Fixtures(ctx context.Context) ([]model.Fixture, error) {
	res, err := Load(ctx, s.storage, KeyFixtures, []model.Fixture{})
	s.report(KeyFixtures, res.State, res.DecodeErr)
	if res.Value == nil {
		res.Value = []model.Fixture{}
	}
	return res.Value, err
}

// SaveFixtures overwrites the fixture collection
func (s *Store) SaveFixtures(ctx context.Context, fixtures []model.Fixture) error {
	return Save(ctx, s.storage, KeyFixtures, nonNil(fixtures))
}

// Registrations returns the registration map, empty when absent or corrupt
func (s *Store) Registrations(ctx context.Context) (model.Registrations, error) {
	res, err := Load(ctx, s.storage, KeyRegistrations, model.Registrations{})
	s.report(KeyRegistrations, res.State, res.DecodeErr)
	if res.Value == nil {
		res.Value = model.Registrations{}
	}
	return res.Value, err
}

// SaveRegistrations overwrites the registration map
func (s *Store) SaveRegistrations(ctx context.Context, regs model.Registrations) error {
	if regs == nil {
		regs = model.Registrations{}
	}
	return Save(ctx, s.storage, KeyRegistrations, regs)
}

// Session returns the persisted session. A missing, null or corrupt entry
// is reported as model.ErrNoSession.
func (s *Store) Session(ctx context.Context) (*model.Session, error) {
	res, err := Load[*model.Session](ctx, s.storage, KeyCurrentUser, nil)
	if err != nil {
		return nil, err
	}
	s.report(KeyCurrentUser, res.State, res.DecodeErr)
	if res.Value == nil || res.Value.Role == "" {
		return nil, model.ErrNoSession
	}
	return res.Value, nil
}

// SaveSession persists the session, replacing any previous one
func (s *Store) SaveSession(ctx context.Context, session *model.Session) error {
	return Save(ctx, s.storage, KeyCurrentUser, session)
}

// ClearSession removes the persisted session
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.storage.Delete(ctx, string(KeyCurrentUser)); err != nil {
		return fmt.Errorf("clear %s: %w", KeyCurrentUser, err)
	}
	return nil
}

func (s *Store) report(key Key, state State, decodeErr error) {
	if state == StateCorrupt {
		s.logger.Warn("discarding unreadable collection",
			slog.String("key", string(key)),
			slog.String("error", decodeErr.Error()),
		)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
