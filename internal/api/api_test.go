package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mcoot/tourneytrack/internal/api"
	"github.com/mcoot/tourneytrack/internal/api/apierr"
	"github.com/mcoot/tourneytrack/internal/api/response"
	"github.com/mcoot/tourneytrack/internal/factory"
	"github.com/mcoot/tourneytrack/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
	// token is sent as the bearer token when set
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	require.NoError(t, app.SeedTeams(
		model.Team{ID: "T1", Name: "Eagles"},
		model.Team{ID: "T2", Name: "Hawks"},
	))

	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		TeamService:         app.TeamService,
		FixtureService:      app.FixtureService,
		RegistrationService: app.RegistrationService,
		IntegrityService:    app.IntegrityService,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) loginOrganizer(t *testing.T) {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/session/organizer", map[string]string{"password": "admin123"})
	require.Equal(t, http.StatusOK, rr.Code)
	ts.token = decodeBody[response.Session](t, rr).Token
	require.NotEmpty(t, ts.token)
}

func (ts *testServer) loginTeam(t *testing.T, name string) {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/session/team", map[string]string{"name": name, "password": "123"})
	require.Equal(t, http.StatusOK, rr.Code)
	ts.token = decodeBody[response.Session](t, rr).Token
	require.NotEmpty(t, ts.token)
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[apierr.ErrorResponse](t, rr).Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.request(http.MethodGet, "/api/v1/teams", nil)

	rr := ts.request(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "tourney_http_requests_total")
}

func TestUnknownRouteIsJSON(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNotFound, errorCode(t, rr))
}

func TestTeamLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/session/team", map[string]string{"name": "eagles", "password": "123"})
	require.Equal(t, http.StatusOK, rr.Code)

	session := decodeBody[response.Session](t, rr)
	assert.True(t, session.LoggedIn)
	assert.Equal(t, "team", session.Role)
	assert.Equal(t, "T1", session.TeamID)
	require.NotEmpty(t, session.Token)

	// The token identifies the caller on later requests
	ts.token = session.Token
	rr = ts.request(http.MethodGet, "/api/v1/session", nil)
	got := decodeBody[response.Session](t, rr)
	assert.Equal(t, "T1", got.TeamID)
	assert.Empty(t, got.Token)
}

func TestTeamLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/session/team", map[string]string{"name": "Eagles", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/session", nil)
	assert.False(t, decodeBody[response.Session](t, rr).LoggedIn)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)

	rr := ts.request(http.MethodDelete, "/api/v1/session", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// The revoked token no longer grants anything
	rr = ts.request(http.MethodGet, "/api/v1/session", nil)
	assert.False(t, decodeBody[response.Session](t, rr).LoggedIn)

	rr = ts.request(http.MethodDelete, "/api/v1/teams/T1", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogoutWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodDelete, "/api/v1/session", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestOrganizerLoginDoesNotAuthorizeOtherCallers(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)

	anonymous := &testServer{handler: ts.handler, app: ts.app}
	rr := anonymous.request(http.MethodDelete, "/api/v1/teams/T1", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = anonymous.request(http.MethodGet, "/api/v1/session", nil)
	assert.False(t, decodeBody[response.Session](t, rr).LoggedIn)

	_, err := ts.app.TeamService.GetTeamByID(t.Context(), "T1")
	assert.NoError(t, err)
}

func TestStoredSessionIsNotHonoured(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.app.AuthService.LoginOrganizer(t.Context(), "admin123")
	require.NoError(t, err)

	rr := ts.request(http.MethodDelete, "/api/v1/teams/T1", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/session", nil)
	assert.False(t, decodeBody[response.Session](t, rr).LoggedIn)
}

func TestUnknownTokenIsAnonymous(t *testing.T) {
	ts := newTestServer(t)
	ts.token = "forged"

	rr := ts.request(http.MethodPost, "/api/v1/teams", map[string]string{"name": "Owls"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestExpiredToken(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)

	ts.app.MockClock.Advance(25 * time.Hour)

	rr := ts.request(http.MethodDelete, "/api/v1/teams/T1", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSessionCookie(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: ts.token})
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "organizer", decodeBody[response.Session](t, rr).Role)
}

func TestOrganizerRoutesRequireLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/teams", map[string]string{"name": "Owls"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// A team operator is not the organizer
	ts.loginTeam(t, "Eagles")
	rr = ts.request(http.MethodDelete, "/api/v1/teams/T2", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	_, err := ts.app.TeamService.GetTeamByID(t.Context(), "T2")
	assert.NoError(t, err)
}

func TestCreateAndGetTeam(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)
	ts.app.MockRandom.QueueString("OWLS01")

	rr := ts.request(http.MethodPost, "/api/v1/teams", map[string]any{
		"name":         "Owls",
		"manager_name": "Olive",
		"players":      []map[string]any{{"name": "Ozzy", "roll_number": 7}},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeBody[model.Team](t, rr)
	assert.Equal(t, model.TeamID("TOWLS01"), created.ID)

	rr = ts.request(http.MethodGet, "/api/v1/teams/TOWLS01", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody[model.Team](t, rr)
	assert.Equal(t, "Olive", got.ManagerName)
	require.Len(t, got.Players, 1)
	assert.Equal(t, 7, got.Players[0].RollNumber)

	rr = ts.request(http.MethodGet, "/api/v1/teams", nil)
	assert.Len(t, decodeBody[[]model.Team](t, rr), 3)
}

func TestGetUnknownTeam(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/teams/T9", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeTeamNotFound, errorCode(t, rr))
}

func TestTeamOperatorUpdatesOwnTeamOnly(t *testing.T) {
	ts := newTestServer(t)
	ts.loginTeam(t, "Eagles")

	rr := ts.request(http.MethodPut, "/api/v1/teams/T1", map[string]string{"name": "Eagles", "institution": "North"})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/teams/T2", map[string]string{"name": "Pigeons"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	name, _ := ts.app.TeamService.GetTeamName(t.Context(), "T2")
	assert.Equal(t, "Hawks", name)
}

func TestFixtureLifecycle(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)
	ts.app.MockRandom.QueueUUID("123")

	rr := ts.request(http.MethodPost, "/api/v1/fixtures", map[string]string{
		"tournament": "Cup", "homeId": "T1", "awayId": "T2", "dateISO": "2030-01-01", "venue": "Main ground",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	fixture := decodeBody[model.Fixture](t, rr)
	assert.Equal(t, model.FixtureID("F123"), fixture.ID)
	assert.False(t, fixture.Played)

	rr = ts.request(http.MethodGet, "/api/v1/fixtures/upcoming", nil)
	upcoming := decodeBody[[]response.Fixture](t, rr)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Eagles", upcoming[0].HomeName)
	assert.Equal(t, "Hawks", upcoming[0].AwayName)

	// Scores may arrive as strings
	rr = ts.request(http.MethodPost, "/api/v1/fixtures/F123/result", map[string]string{"home": "2", "away": "1"})
	require.Equal(t, http.StatusOK, rr.Code)
	recorded := decodeBody[model.Fixture](t, rr)
	assert.True(t, recorded.Played)
	assert.Equal(t, model.Score(2), *recorded.Home)

	rr = ts.request(http.MethodGet, "/api/v1/fixtures/results?limit=10", nil)
	results := decodeBody[[]response.Fixture](t, rr)
	require.Len(t, results, 1)
	assert.Equal(t, "T1", results[0].Winner)

	rr = ts.request(http.MethodGet, "/api/v1/teams/T1/record", nil)
	record := decodeBody[response.TeamRecord](t, rr)
	assert.Equal(t, 1, record.Wins)
	assert.Equal(t, 1, record.Total)

	rr = ts.request(http.MethodGet, "/api/v1/teams/T2/fixtures", nil)
	schedule := decodeBody[response.TeamSchedule](t, rr)
	assert.Equal(t, "T2", schedule.TeamID)
	assert.Empty(t, schedule.Upcoming)
	require.Len(t, schedule.Completed, 1)
	assert.Equal(t, "Eagles", schedule.Completed[0].Opponent)

	rr = ts.request(http.MethodGet, "/api/v1/fixtures/F123", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	single := decodeBody[response.Fixture](t, rr)
	assert.Equal(t, "Eagles", single.HomeName)
	assert.Equal(t, "Hawks", single.AwayName)
	assert.Equal(t, "Main ground", single.Venue)
}

func TestGetUnknownFixture(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/fixtures/Fnope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeFixtureNotFound, errorCode(t, rr))
}

func TestAddFixtureVenueConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)
	require.NoError(t, ts.app.SeedTeams(
		model.Team{ID: "T1", Name: "Eagles"},
		model.Team{ID: "T2", Name: "Hawks"},
		model.Team{ID: "T3", Name: "Owls"},
		model.Team{ID: "T4", Name: "Crows"},
	))

	rr := ts.request(http.MethodPost, "/api/v1/fixtures", map[string]string{
		"tournament": "Cup", "homeId": "T1", "awayId": "T2", "dateISO": "2030-01-01T15:00", "venue": "Main ground",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/fixtures", map[string]string{
		"tournament": "Cup", "homeId": "T3", "awayId": "T4", "dateISO": "2030-01-01T15:00", "venue": "main ground",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeVenueConflict, errorCode(t, rr))
}

func TestAddFixtureMissingFields(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)

	rr := ts.request(http.MethodPost, "/api/v1/fixtures", map[string]string{"tournament": "Cup", "homeId": "T1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeMissingFields, errorCode(t, rr))

	stored, err := ts.app.Store.Fixtures(t.Context())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRecordResultUnknownFixture(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)

	rr := ts.request(http.MethodPost, "/api/v1/fixtures/Fnope/result", map[string]int{"home": 2, "away": 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeFixtureNotFound, errorCode(t, rr))
}

func TestRecordResultRequiresScores(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)

	rr := ts.request(http.MethodPost, "/api/v1/fixtures/F1/result", map[string]int{"home": 2})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/fixtures/F1/result", map[string]string{"home": "two", "away": "1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordResultRejectsNegativeScore(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)
	require.NoError(t, ts.app.SeedFixtures(model.Fixture{ID: "F1", Tournament: "Cup", HomeID: "T1", AwayID: "T2", DateISO: "2030-01-01"}))

	rr := ts.request(http.MethodPost, "/api/v1/fixtures/F1/result", map[string]int{"home": -1, "away": 2})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidScore, errorCode(t, rr))

	stored, err := ts.app.Store.Fixtures(t.Context())
	require.NoError(t, err)
	assert.False(t, stored[0].Played)
}

func TestInvalidLimit(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/fixtures/upcoming?limit=five", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/fixtures/upcoming?limit=0", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeBody[[]response.Fixture](t, rr))
}

func TestTournamentRegistration(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)

	rr := ts.request(http.MethodPost, "/api/v1/tournaments/Cup/teams", map[string]string{"team_id": "T1"})
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/tournaments/Cup/teams", map[string]string{"team_id": "T1"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/tournaments", nil)
	tournaments := decodeBody[[]response.Tournament](t, rr)
	require.Len(t, tournaments, 1)
	assert.Equal(t, []string{"T1"}, tournaments[0].Teams)

	rr = ts.request(http.MethodDelete, "/api/v1/tournaments/Cup/teams/T1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/tournaments/Cup/teams", nil)
	assert.Empty(t, decodeBody[response.Tournament](t, rr).Teams)
}

func TestTournamentRegistrationCheck(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)
	ts.request(http.MethodPost, "/api/v1/tournaments/Cup/teams", map[string]string{"team_id": "T1"})

	// Public read
	ts.token = ""
	rr := ts.request(http.MethodGet, "/api/v1/tournaments/Cup/teams/T1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, response.Registration{Tournament: "Cup", TeamID: "T1", Registered: true},
		decodeBody[response.Registration](t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/tournaments/Cup/teams/T2", nil)
	assert.False(t, decodeBody[response.Registration](t, rr).Registered)
}

func TestDeleteTeamCascades(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)
	ts.request(http.MethodPost, "/api/v1/tournaments/Cup/teams", map[string]string{"team_id": "T2"})
	ts.request(http.MethodPost, "/api/v1/fixtures", map[string]string{
		"tournament": "Cup", "homeId": "T1", "awayId": "T2", "dateISO": "2030-01-01",
	})

	rr := ts.request(http.MethodDelete, "/api/v1/teams/T2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	report := decodeBody[response.CleanupReport](t, rr)
	assert.Equal(t, 1, report.FixturesRemoved)
	assert.Equal(t, 1, report.RegistrationsRemoved)

	rr = ts.request(http.MethodGet, "/api/v1/fixtures/upcoming", nil)
	assert.Empty(t, decodeBody[[]response.Fixture](t, rr))
}

func TestCleanupEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.loginOrganizer(t)
	require.NoError(t, ts.app.SeedFixtures(model.Fixture{ID: "F1", HomeID: "T1", AwayID: "T9", DateISO: "2030-01-01"}))

	rr := ts.request(http.MethodPost, "/api/v1/maintenance/cleanup", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeBody[response.CleanupReport](t, rr).FixturesRemoved)
}
