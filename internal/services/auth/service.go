package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/tourneytrack/internal/collection"
	"github.com/mcoot/tourneytrack/internal/dependencies/clock"
	"github.com/mcoot/tourneytrack/internal/metrics"
	"github.com/mcoot/tourneytrack/internal/model"
)

// Errors
var (
	// ErrInvalidCredentials covers both an unknown team and a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not permitted for this session")
	// ErrInvalidSession is returned for an unknown, revoked or expired token
	ErrInvalidSession = errors.New("invalid or expired session token")
)

// Config holds the shared secrets for the two roles
type Config struct {
	TeamPassword      string
	OrganizerPassword string
	// BcryptCost is the work factor used to hash the secrets at startup
	BcryptCost int
	// TokenTTL is how long an API session token stays valid
	TokenTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TeamPassword:      "123",
		OrganizerPassword: "admin123",
		BcryptCost:        bcrypt.DefaultCost,
		TokenTTL:          24 * time.Hour,
	}
}

// Service handles login, logout and sessions. The CLI keeps a single
// persisted current session; API callers instead hold bearer tokens that
// live only in this process.
type Service struct {
	store  *collection.Store
	clock  clock.Clock
	logger *slog.Logger

	teamHash      []byte
	organizerHash []byte
	tokenTTL      time.Duration

	mu     sync.RWMutex
	tokens map[string]tokenSession
}

type tokenSession struct {
	session   model.Session
	expiresAt time.Time
}

// New creates a new auth service. The configured secrets are hashed once so
// that plaintext is not kept in memory.
func New(store *collection.Store, clk clock.Clock, cfg Config, logger *slog.Logger) (*Service, error) {
	defaults := DefaultConfig()
	if cfg.TeamPassword == "" {
		cfg.TeamPassword = defaults.TeamPassword
	}
	if cfg.OrganizerPassword == "" {
		cfg.OrganizerPassword = defaults.OrganizerPassword
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}

	teamHash, err := bcrypt.GenerateFromPassword([]byte(cfg.TeamPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash team password: %w", err)
	}
	organizerHash, err := bcrypt.GenerateFromPassword([]byte(cfg.OrganizerPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash organizer password: %w", err)
	}

	return &Service{
		store:         store,
		clock:         clk,
		logger:        logger,
		teamHash:      teamHash,
		organizerHash: organizerHash,
		tokenTTL:      cfg.TokenTTL,
		tokens:        make(map[string]tokenSession),
	}, nil
}

// LoginTeam logs in as the operator of the team whose name matches and
// persists the result as the current session.
func (s *Service) LoginTeam(ctx context.Context, name, password string) (*model.Session, error) {
	session, err := s.AuthenticateTeam(ctx, name, password)
	if err != nil {
		return nil, err
	}
	return s.begin(ctx, session)
}

// AuthenticateTeam checks team credentials without touching the stored
// session. The name matches ignoring case and surrounding whitespace. The
// password is checked even when no team matches so both failure cases look
// the same.
func (s *Service) AuthenticateTeam(ctx context.Context, name, password string) (*model.Session, error) {
	teams, err := s.store.Teams(ctx)
	if err != nil {
		return nil, err
	}

	var team *model.Team
	for i := range teams {
		if teams[i].MatchesName(name) {
			team = &teams[i]
			break
		}
	}

	passwordOK := bcrypt.CompareHashAndPassword(s.teamHash, []byte(password)) == nil
	if team == nil || !passwordOK {
		metrics.ObserveLogin(string(model.RoleTeam), "failure")
		return nil, ErrInvalidCredentials
	}

	metrics.ObserveLogin(string(model.RoleTeam), "success")
	return &model.Session{Role: model.RoleTeam, TeamID: team.ID}, nil
}

// LoginOrganizer logs in with organizer rights and persists the session
func (s *Service) LoginOrganizer(ctx context.Context, password string) (*model.Session, error) {
	session, err := s.AuthenticateOrganizer(password)
	if err != nil {
		return nil, err
	}
	return s.begin(ctx, session)
}

// AuthenticateOrganizer checks the organizer secret
func (s *Service) AuthenticateOrganizer(password string) (*model.Session, error) {
	if err := bcrypt.CompareHashAndPassword(s.organizerHash, []byte(password)); err != nil {
		metrics.ObserveLogin(string(model.RoleOrganizer), "failure")
		return nil, ErrInvalidCredentials
	}
	metrics.ObserveLogin(string(model.RoleOrganizer), "success")
	return &model.Session{Role: model.RoleOrganizer}, nil
}

// IssueToken hands out a bearer token for an authenticated session
func (s *Service) IssueToken(session *model.Session) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	s.mu.Lock()
	s.tokens[token] = tokenSession{
		session:   *session,
		expiresAt: s.clock.Now().Add(s.tokenTTL),
	}
	s.mu.Unlock()

	s.logger.Info("token issued",
		slog.String("role", string(session.Role)),
		slog.String("team_id", string(session.TeamID)),
	)
	return token, nil
}

// ValidateToken returns the session a token was issued for
func (s *Service) ValidateToken(token string) (*model.Session, error) {
	s.mu.RLock()
	entry, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}
	if !s.clock.Now().Before(entry.expiresAt) {
		s.RevokeToken(token)
		return nil, ErrInvalidSession
	}

	session := entry.session
	return &session, nil
}

// RevokeToken forgets a token. Unknown tokens are ignored.
func (s *Service) RevokeToken(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// CurrentUser returns the persisted session, or model.ErrNoSession
func (s *Service) CurrentUser(ctx context.Context) (*model.Session, error) {
	return s.store.Session(ctx)
}

// Logout clears the persisted session. Logging out with no session is not
// an error.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return err
	}
	s.logger.Info("session cleared")
	return nil
}

func (s *Service) begin(ctx context.Context, session *model.Session) (*model.Session, error) {
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("session started",
		slog.String("role", string(session.Role)),
		slog.String("team_id", string(session.TeamID)),
	)
	return session, nil
}

// RequireOrganizer returns ErrForbidden unless the session is an organizer's
func RequireOrganizer(session *model.Session) error {
	if session == nil {
		return model.ErrNoSession
	}
	if !session.IsOrganizer() {
		return ErrForbidden
	}
	return nil
}

// RequireTeamManager allows the organizer or the operator of the given team
func RequireTeamManager(session *model.Session, teamID model.TeamID) error {
	if session == nil {
		return model.ErrNoSession
	}
	if session.IsOrganizer() || session.OwnsTeam(teamID) {
		return nil
	}
	return ErrForbidden
}
