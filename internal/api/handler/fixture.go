package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tourneytrack/internal/api/request"
	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/fixtures"
	"github.com/mcoot/tourneytrack/internal/services/teams"
)

// FixtureHandler handles fixture endpoints
type FixtureHandler struct {
	fixtureService *fixtures.Service
	teamService    *teams.Service
}

// NewFixtureHandler creates a new fixture handler
func NewFixtureHandler(fixtureService *fixtures.Service, teamService *teams.Service) *FixtureHandler {
	return &FixtureHandler{
		fixtureService: fixtureService,
		teamService:    teamService,
	}
}

// Upcoming handles GET /api/v1/fixtures/upcoming
func (h *FixtureHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r, fixtures.DefaultUpcomingLimit)
	if !ok {
		return
	}
	list, err := h.fixtureService.Upcoming(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeList(w, r, list)
}

// Results handles GET /api/v1/fixtures/results
func (h *FixtureHandler) Results(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r, fixtures.DefaultResultsLimit)
	if !ok {
		return
	}
	list, err := h.fixtureService.Results(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeList(w, r, list)
}

// Get handles GET /api/v1/fixtures/{id}
func (h *FixtureHandler) Get(w http.ResponseWriter, r *http.Request) {
	fixture, err := h.fixtureService.GetFixture(r.Context(), model.FixtureID(mux.Vars(r)["id"]))
	if err != nil {
		WriteError(w, err)
		return
	}
	names, err := h.teamService.FixtureNames(r.Context(), fixture)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.FixtureFromModel(*fixture, names))
}

// Create handles POST /api/v1/fixtures
func (h *FixtureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.AddFixtureRequest
	if !decode(w, r, &req) {
		return
	}

	fixture, err := h.fixtureService.AddFixture(r.Context(), fixtures.FixtureInput{
		Tournament: req.Tournament,
		HomeID:     model.TeamID(req.HomeID),
		AwayID:     model.TeamID(req.AwayID),
		DateISO:    req.DateISO,
		Venue:      req.Venue,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Created(w, fixture)
}

// RecordResult handles POST /api/v1/fixtures/{id}/result
func (h *FixtureHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var req request.RecordResultRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Home == nil || req.Away == nil {
		WriteError(w, NewInvalidRequestError("home and away scores are required"))
		return
	}

	id := model.FixtureID(mux.Vars(r)["id"])
	fixture, err := h.fixtureService.RecordResult(r.Context(), id, *req.Home, *req.Away)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, fixture)
}

func (h *FixtureHandler) writeList(w http.ResponseWriter, r *http.Request, list []model.Fixture) {
	all, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.List(w, response.FixturesFromModel(list, response.TeamNames(all)))
}
