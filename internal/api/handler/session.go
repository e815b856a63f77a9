package handler

import (
	"net/http"

	"github.com/mcoot/tourneytrack/internal/api/middleware"
	"github.com/mcoot/tourneytrack/internal/api/request"
	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/auth"
)

// SessionHandler handles login, logout and the current session
type SessionHandler struct {
	authService *auth.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service) *SessionHandler {
	return &SessionHandler{
		authService: authService,
	}
}

// LoginTeam handles POST /api/v1/session/team
func (h *SessionHandler) LoginTeam(w http.ResponseWriter, r *http.Request) {
	var req request.TeamLoginRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	session, err := h.authService.AuthenticateTeam(r.Context(), req.Name, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.issue(w, session)
}

// LoginOrganizer handles POST /api/v1/session/organizer
func (h *SessionHandler) LoginOrganizer(w http.ResponseWriter, r *http.Request) {
	var req request.OrganizerLoginRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.authService.AuthenticateOrganizer(req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.issue(w, session)
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.SessionFromModel(middleware.GetSession(r.Context())))
}

// Logout handles DELETE /api/v1/session. Only the caller's token is
// revoked; the CLI's stored session is left alone.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.BearerToken(r); token != "" {
		h.authService.RevokeToken(token)
	}
	response.NoContent(w)
}

// issue responds with the session and a fresh bearer token for it
func (h *SessionHandler) issue(w http.ResponseWriter, session *model.Session) {
	token, err := h.authService.IssueToken(session)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.SessionFromModel(session)
	resp.Token = token
	response.JSON(w, http.StatusOK, resp)
}
