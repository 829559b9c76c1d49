package factory

import (
	"time"

	"github.com/reversi-arena/reversigo/internal/dependencies/mocks"
	"github.com/reversi-arena/reversigo/internal/services/auth"
	"github.com/reversi-arena/reversigo/internal/services/game"
	"github.com/reversi-arena/reversigo/internal/storage/memory"
	"github.com/reversi-arena/reversigo/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, auth.DefaultConfig(), game.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
