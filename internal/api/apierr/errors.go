package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTeamNotFound       = "TEAM_NOT_FOUND"
	CodeInvalidTeam        = "INVALID_TEAM"
	CodeFixtureNotFound    = "FIXTURE_NOT_FOUND"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeSameTeam           = "SAME_TEAM"
	CodeInvalidDate        = "INVALID_DATE"
	CodeScheduleConflict   = "SCHEDULE_CONFLICT"
	CodeVenueConflict      = "VENUE_CONFLICT"
	CodeInvalidScore       = "INVALID_SCORE"
	CodeInvalidTournament  = "INVALID_TOURNAMENT"
	CodeAlreadyRegistered  = "ALREADY_REGISTERED"
	CodeNotRegistered      = "NOT_REGISTERED"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusOf returns the HTTP status WriteError would use for err
func StatusOf(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrInvalidTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeam, "Team id is required"}}
	case errors.Is(err, model.ErrFixtureNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeFixtureNotFound, "Fixture not found"}}
	case errors.Is(err, model.ErrMissingFixtureFields):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingFields, "Tournament, home team, away team and date are required"}}
	case errors.Is(err, model.ErrSameTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeSameTeam, "A team cannot play itself"}}
	case errors.Is(err, model.ErrInvalidDate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDate, "Date must be ISO 8601"}}
	case errors.Is(err, model.ErrScheduleConflict):
		return &httpError{http.StatusConflict, APIError{CodeScheduleConflict, "A team already has a fixture at that time"}}
	case errors.Is(err, model.ErrVenueConflict):
		return &httpError{http.StatusConflict, APIError{CodeVenueConflict, "The venue is already booked at that time"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScore, "Scores must be non-negative whole numbers"}}
	case errors.Is(err, model.ErrInvalidTournament):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTournament, "Tournament name is required"}}
	case errors.Is(err, model.ErrAlreadyRegistered):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRegistered, "Team is already registered for this tournament"}}
	case errors.Is(err, model.ErrNotRegistered):
		return &httpError{http.StatusConflict, APIError{CodeNotRegistered, "Team is not registered for this tournament"}}
	case errors.Is(err, model.ErrNoSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Login required"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid credentials"}}
	case errors.Is(err, auth.ErrForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Not permitted for this session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Login required"}}
}

// NewNotFoundError creates a not found error for unmatched routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
