package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tourneytrack/internal/api/request"
	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/integrity"
	"github.com/mcoot/tourneytrack/internal/services/registration"
)

// TournamentHandler handles tournament registration and maintenance
// endpoints
type TournamentHandler struct {
	registrationService *registration.Service
	integrityService    *integrity.Service
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(registrationService *registration.Service, integrityService *integrity.Service) *TournamentHandler {
	return &TournamentHandler{
		registrationService: registrationService,
		integrityService:    integrityService,
	}
}

// List handles GET /api/v1/tournaments
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.registrationService.Tournaments(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Tournament, 0, len(names))
	for _, name := range names {
		ids, err := h.registrationService.TournamentTeams(r.Context(), name)
		if err != nil {
			WriteError(w, err)
			return
		}
		out = append(out, response.Tournament{Name: name, Teams: response.TeamIDs(ids)})
	}
	response.List(w, out)
}

// Teams handles GET /api/v1/tournaments/{name}/teams
func (h *TournamentHandler) Teams(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	ids, err := h.registrationService.TournamentTeams(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Tournament{Name: name, Teams: response.TeamIDs(ids)})
}

// Check handles GET /api/v1/tournaments/{name}/teams/{team_id}
func (h *TournamentHandler) Check(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	registered, err := h.registrationService.IsRegistered(r.Context(), vars["name"], model.TeamID(vars["team_id"]))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Registration{
		Tournament: vars["name"],
		TeamID:     vars["team_id"],
		Registered: registered,
	})
}

// Register handles POST /api/v1/tournaments/{name}/teams
func (h *TournamentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterTeamRequest
	if !decode(w, r, &req) {
		return
	}
	if req.TeamID == "" {
		WriteError(w, NewInvalidRequestError("team_id is required"))
		return
	}

	name := mux.Vars(r)["name"]
	if err := h.registrationService.RegisterTeam(r.Context(), name, model.TeamID(req.TeamID)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Unregister handles DELETE /api/v1/tournaments/{name}/teams/{team_id}
func (h *TournamentHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.registrationService.UnregisterTeam(r.Context(), vars["name"], model.TeamID(vars["team_id"])); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Cleanup handles POST /api/v1/maintenance/cleanup
func (h *TournamentHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	report, err := h.integrityService.CleanupOrphans(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CleanupReportFromModel(report))
}
