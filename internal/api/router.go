package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tourneytrack/internal/api/apierr"
	"github.com/mcoot/tourneytrack/internal/api/handler"
	"github.com/mcoot/tourneytrack/internal/api/middleware"
	"github.com/mcoot/tourneytrack/internal/metrics"
	commonmw "github.com/mcoot/tourneytrack/internal/middleware"
	"github.com/mcoot/tourneytrack/internal/services/auth"
	"github.com/mcoot/tourneytrack/internal/services/fixtures"
	"github.com/mcoot/tourneytrack/internal/services/integrity"
	"github.com/mcoot/tourneytrack/internal/services/registration"
	"github.com/mcoot/tourneytrack/internal/services/teams"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	AuthService         *auth.Service
	TeamService         *teams.Service
	FixtureService      *fixtures.Service
	RegistrationService *registration.Service
	IntegrityService    *integrity.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	teamHandler := handler.NewTeamHandler(cfg.TeamService, cfg.FixtureService)
	fixtureHandler := handler.NewFixtureHandler(cfg.FixtureService, cfg.TeamService)
	tournamentHandler := handler.NewTournamentHandler(cfg.RegistrationService, cfg.IntegrityService)

	// Create middleware
	sessionMiddleware := middleware.Session(cfg.AuthService)
	loggingMiddleware := commonmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	organizer := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireOrganizer(h)
	}

	// Prometheus scrape endpoint sits outside the API prefix
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(metrics.HTTPMetricsMiddleware)
	api.Use(sessionMiddleware)

	// Session routes
	api.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/session", sessionHandler.Logout).Methods(http.MethodDelete)
	api.HandleFunc("/session/team", sessionHandler.LoginTeam).Methods(http.MethodPost)
	api.HandleFunc("/session/organizer", sessionHandler.LoginOrganizer).Methods(http.MethodPost)

	// Team routes (reads are public)
	api.HandleFunc("/teams", teamHandler.List).Methods(http.MethodGet)
	api.Handle("/teams", organizer(teamHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id}", teamHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id}", teamHandler.Update).Methods(http.MethodPut)
	api.Handle("/teams/{id}", organizer(teamHandler.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/teams/{id}/record", teamHandler.Record).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id}/fixtures", teamHandler.Fixtures).Methods(http.MethodGet)

	// Fixture routes
	api.HandleFunc("/fixtures/upcoming", fixtureHandler.Upcoming).Methods(http.MethodGet)
	api.HandleFunc("/fixtures/results", fixtureHandler.Results).Methods(http.MethodGet)
	api.HandleFunc("/fixtures/{id}", fixtureHandler.Get).Methods(http.MethodGet)
	api.Handle("/fixtures", organizer(fixtureHandler.Create)).Methods(http.MethodPost)
	api.Handle("/fixtures/{id}/result", organizer(fixtureHandler.RecordResult)).Methods(http.MethodPost)

	// Tournament routes
	api.HandleFunc("/tournaments", tournamentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{name}/teams", tournamentHandler.Teams).Methods(http.MethodGet)
	api.Handle("/tournaments/{name}/teams", organizer(tournamentHandler.Register)).Methods(http.MethodPost)
	api.HandleFunc("/tournaments/{name}/teams/{team_id}", tournamentHandler.Check).Methods(http.MethodGet)
	api.Handle("/tournaments/{name}/teams/{team_id}", organizer(tournamentHandler.Unregister)).Methods(http.MethodDelete)

	api.Handle("/maintenance/cleanup", organizer(tournamentHandler.Cleanup)).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}
