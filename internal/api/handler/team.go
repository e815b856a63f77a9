package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tourneytrack/internal/api/middleware"
	"github.com/mcoot/tourneytrack/internal/api/request"
	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/auth"
	"github.com/mcoot/tourneytrack/internal/services/fixtures"
	"github.com/mcoot/tourneytrack/internal/services/teams"
)

// TeamHandler handles team endpoints
type TeamHandler struct {
	teamService    *teams.Service
	fixtureService *fixtures.Service
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *teams.Service, fixtureService *fixtures.Service) *TeamHandler {
	return &TeamHandler{
		teamService:    teamService,
		fixtureService: fixtureService,
	}
}

// List handles GET /api/v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.List(w, list)
}

// Create handles POST /api/v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.TeamRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), req.ToModel(""))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Created(w, team)
}

// Get handles GET /api/v1/teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeamByID(r.Context(), teamID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, team)
}

// Update handles PUT /api/v1/teams/{id}. The organizer may update any
// team; a team operator only their own.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := teamID(r)
	if err := auth.RequireTeamManager(middleware.GetSession(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}

	var req request.TeamRequest
	if !decode(w, r, &req) {
		return
	}

	team := req.ToModel(id)
	if err := h.teamService.SaveTeam(r.Context(), team); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, team)
}

// Delete handles DELETE /api/v1/teams/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	report, err := h.teamService.DeleteTeamByID(r.Context(), teamID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CleanupReportFromModel(report))
}

// Record handles GET /api/v1/teams/{id}/record
func (h *TeamHandler) Record(w http.ResponseWriter, r *http.Request) {
	id := teamID(r)
	tournament := r.URL.Query().Get("tournament")

	record, err := h.fixtureService.Record(r.Context(), id, tournament)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamRecord{
		TeamID:     string(id),
		Tournament: tournament,
		TeamRecord: *record,
	})
}

// Fixtures handles GET /api/v1/teams/{id}/fixtures
func (h *TeamHandler) Fixtures(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.fixtureService.TeamFixtures(r.Context(), teamID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	names, err := h.names(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamScheduleFromModel(teamID(r), schedule, names))
}

func (h *TeamHandler) names(r *http.Request) (map[model.TeamID]string, error) {
	list, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		return nil, err
	}
	return response.TeamNames(list), nil
}

func teamID(r *http.Request) model.TeamID {
	return model.TeamID(mux.Vars(r)["id"])
}
