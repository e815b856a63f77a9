package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/tourneytrack/internal/dependencies/mocks"
	"github.com/mcoot/tourneytrack/internal/model"
	"github.com/mcoot/tourneytrack/internal/services/auth"
	"github.com/mcoot/tourneytrack/internal/services/fixtures"
	"github.com/mcoot/tourneytrack/internal/storage"
	"github.com/mcoot/tourneytrack/internal/storage/memory"
	"github.com/mcoot/tourneytrack/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// TestTime is the mock clock's starting instant
var TestTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// NewTestApp creates an App over fresh in-memory storage with mocked
// dependencies and the default secrets
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage wires a test App over existing storage, running the
// startup cleanup against whatever it already holds
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(TestTime)
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.DefaultConfig()
	authCfg.BcryptCost = bcrypt.MinCost

	app, err := newWithDependencies(context.Background(), store, mockClock, mockRandom,
		authCfg, fixtures.DefaultConfig(), testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// SeedTeams writes teams directly, bypassing the service layer
func (t *TestApp) SeedTeams(teams ...model.Team) error {
	return t.Store.SaveTeams(context.Background(), teams)
}

// SeedFixtures writes fixtures directly, bypassing the service layer
func (t *TestApp) SeedFixtures(fixtures ...model.Fixture) error {
	return t.Store.SaveFixtures(context.Background(), fixtures)
}
