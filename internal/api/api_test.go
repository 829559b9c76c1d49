package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reversi-arena/reversigo/internal/api"
	"github.com/reversi-arena/reversigo/internal/api/response"
	"github.com/reversi-arena/reversigo/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with a real clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		RegistryService: app.RegistryService,
		MatchService:    app.MatchService,
		GameController:  app.GameController,
	})

	return &testServer{
		handler: router,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// signUp creates a guest, claims a name, and returns the session token
func (ts *testServer) signUp(t *testing.T, name string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var auth response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &auth))

	rr = ts.request(http.MethodPost, "/api/v1/profile", map[string]string{"name": name}, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	return auth.SessionToken
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", nil, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.Player.ID)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.False(t, registerResp.Player.IsGuest)

	// Login
	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)

	// Wrong password
	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/players/me"},
		{http.MethodPost, "/api/v1/profile"},
		{http.MethodGet, "/api/v1/profile"},
		{http.MethodPost, "/api/v1/match"},
		{http.MethodGet, "/api/v1/game"},
		{http.MethodPost, "/api/v1/game/move"},
		{http.MethodPost, "/api/v1/game/resign"},
	}

	for _, route := range protected {
		rr := ts.request(route.method, route.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
	}
}

func TestClaimName(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signUp(t, "alice")

	// Profile is readable back
	rr := ts.request(http.MethodGet, "/api/v1/profile", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var profile response.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	assert.Equal(t, "alice", profile.Name)
	assert.Equal(t, 0, profile.Score)

	// Someone else cannot take the same name
	rr = ts.request(http.MethodPost, "/api/v1/players/guest", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var other response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &other))

	rr = ts.request(http.MethodPost, "/api/v1/profile", map[string]string{"name": "alice"}, other.SessionToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NAME_TAKEN")
}

func TestMatchAndPlay(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.signUp(t, "alice")
	bobToken := ts.signUp(t, "bob")

	// Alice challenges Bob
	rr := ts.request(http.MethodPost, "/api/v1/match", map[string]string{"opponent": "bob"}, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var game response.GameSession
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	assert.Equal(t, "black", game.Turn)
	assert.NotEmpty(t, game.ID)

	// Neither can be matched while playing
	rr = ts.request(http.MethodPost, "/api/v1/match", map[string]string{"opponent": "bob"}, aliceToken)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Bob cannot move first
	rr = ts.request(http.MethodPost, "/api/v1/game/move", map[string]int{"row": 2, "col": 4}, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_YOUR_TURN")

	// Alice opens
	rr = ts.request(http.MethodPost, "/api/v1/game/move", map[string]int{"row": 2, "col": 3}, aliceToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var move response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &move))
	assert.Equal(t, "ok", move.Status)
	assert.Equal(t, "white", move.Game.Turn)
	assert.Equal(t, "black", move.Game.Board.Cells[2][3])
	assert.Equal(t, "black", move.Game.Board.Cells[3][3], "captured piece flips")

	// A non-capturing move is rejected
	rr = ts.request(http.MethodPost, "/api/v1/game/move", map[string]int{"row": 0, "col": 0}, bobToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ILLEGAL_MOVE")

	// An out-of-bounds move is rejected
	rr = ts.request(http.MethodPost, "/api/v1/game/move", map[string]int{"row": 9, "col": 0}, bobToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_COORDINATE")

	// Bob polls his view
	rr = ts.request(http.MethodGet, "/api/v1/game?since=0", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var view response.GameView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "white", view.Color)
	assert.True(t, view.YourTurn)
	assert.True(t, view.Changed)
	assert.Len(t, view.Moves, 1)
}

func TestMatchErrors(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.signUp(t, "alice")

	// Unknown opponent
	rr := ts.request(http.MethodPost, "/api/v1/match", map[string]string{"opponent": "nobody"}, aliceToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "OPPONENT_NOT_FOUND")

	// Cannot play yourself
	rr = ts.request(http.MethodPost, "/api/v1/match", map[string]string{"opponent": "alice"}, aliceToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// A guest without a name cannot challenge anyone
	rr = ts.request(http.MethodPost, "/api/v1/players/guest", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var guest response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &guest))

	rr = ts.request(http.MethodPost, "/api/v1/match", map[string]string{"opponent": "alice"}, guest.SessionToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_REGISTERED")
}

func TestResignAndLeaderboard(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.signUp(t, "alice")
	bobToken := ts.signUp(t, "bob")

	rr := ts.request(http.MethodPost, "/api/v1/match", map[string]string{"opponent": "bob"}, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	// Bob concedes immediately
	rr = ts.request(http.MethodPost, "/api/v1/game/resign", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var game response.GameSession
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	require.NotNil(t, game.Result)
	assert.Equal(t, "black", game.Result.Winner)

	// No active game anymore
	rr = ts.request(http.MethodGet, "/api/v1/game", nil, aliceToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Leaderboard ranks alice first, and is public
	rr = ts.request(http.MethodGet, "/api/v1/leaderboard?n=5", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var board response.Leaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.Len(t, board.Players, 2)
	assert.Equal(t, "alice", board.Players[0].Name)
	assert.Equal(t, 1, board.Players[0].Score)
}

func TestLeaderboardLimits(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 3; i++ {
		ts.signUp(t, fmt.Sprintf("player%d", i))
	}

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard?n=2", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var board response.Leaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	assert.Len(t, board.Players, 2)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard?n=0", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
