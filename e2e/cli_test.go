package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reversi-arena/reversigo/internal/api"
	"github.com/reversi-arena/reversigo/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "reversi-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/reversi")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		RegistryService: app.RegistryService,
		MatchService:    app.MatchService,
		GameController:  app.GameController,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID      string `json:"id"`
		IsGuest bool   `json:"is_guest"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type profileResponse struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

type leaderboardResponse struct {
	Players []profileResponse `json:"players"`
}

type boardResponse struct {
	Cells [][]string `json:"cells"`
}

type resultResponse struct {
	Winner string `json:"winner"`
	Draw   bool   `json:"draw"`
	Black  int    `json:"black"`
	White  int    `json:"white"`
}

type gameResponse struct {
	ID          string          `json:"id"`
	BlackPlayer string          `json:"black_player"`
	WhitePlayer string          `json:"white_player"`
	Board       boardResponse   `json:"board"`
	Turn        string          `json:"turn"`
	MoveCount   int             `json:"move_count"`
	Result      *resultResponse `json:"result"`
}

type moveResponse struct {
	Status string       `json:"status"`
	Game   gameResponse `json:"game"`
}

type gameViewResponse struct {
	GameID    string          `json:"game_id"`
	Color     string          `json:"color"`
	Board     boardResponse   `json:"board"`
	Turn      string          `json:"turn"`
	YourTurn  bool            `json:"your_turn"`
	MoveCount int             `json:"move_count"`
	Changed   bool            `json:"changed"`
	Result    *resultResponse `json:"result"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_GuestAndName(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create a guest; token is saved to the token file
	output, err := cli.run("player", "guest")
	require.NoError(t, err, "output: %s", output)

	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))
	assert.True(t, auth.Player.IsGuest)
	assert.NotEmpty(t, auth.SessionToken)

	// The saved token authenticates further calls
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	// Claim a name
	output, err = cli.run("name", "set", "Alice")
	require.NoError(t, err, "output: %s", output)

	var profile profileResponse
	require.NoError(t, json.Unmarshal([]byte(output), &profile))
	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, 0, profile.Score)

	// And read it back
	output, err = cli.run("name", "show")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &profile))
	assert.Equal(t, "Alice", profile.Name)
}

func TestCLI_RegisterAndLogin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "register", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var registered authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &registered))
	assert.False(t, registered.Player.IsGuest)

	output, err = cli.run("player", "login", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var loggedIn authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &loggedIn))
	assert.Equal(t, registered.Player.ID, loggedIn.Player.ID)

	// Bad password is rejected
	output, err = cli.run("player", "login", "--user", "alice", "--pass", "wrong")
	require.Error(t, err, "output: %s", output)
}

func TestCLI_FullGame(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Two players sign up
	output, err := cli.run("player", "guest")
	require.NoError(t, err, "output: %s", output)
	var alice authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))
	_, err = cli.runWithToken(alice.SessionToken, "name", "set", "Alice")
	require.NoError(t, err)

	output, err = cli.run("player", "guest")
	require.NoError(t, err, "output: %s", output)
	var bob authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))
	_, err = cli.runWithToken(bob.SessionToken, "name", "set", "Bob")
	require.NoError(t, err)

	// Alice challenges Bob and plays black
	output, err = cli.runWithToken(alice.SessionToken, "challenge", "Bob")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, alice.Player.ID, game.BlackPlayer)
	assert.Equal(t, "black", game.Turn)

	// Alice opens; the captured piece flips
	output, err = cli.runWithToken(alice.SessionToken, "game", "move", "2", "3")
	require.NoError(t, err, "output: %s", output)

	var move moveResponse
	require.NoError(t, json.Unmarshal([]byte(output), &move))
	assert.Equal(t, "ok", move.Status)
	assert.Equal(t, "black", move.Game.Board.Cells[3][3])

	// Moving out of turn fails
	output, err = cli.runWithToken(alice.SessionToken, "game", "move", "2", "2")
	require.Error(t, err, "output: %s", output)

	// Bob sees the move in his view
	output, err = cli.runWithToken(bob.SessionToken, "game", "show", "--since", "0")
	require.NoError(t, err, "output: %s", output)

	var view gameViewResponse
	require.NoError(t, json.Unmarshal([]byte(output), &view))
	assert.Equal(t, "white", view.Color)
	assert.True(t, view.YourTurn)
	assert.True(t, view.Changed)

	// Bob concedes; Alice takes the win and tops the leaderboard
	output, err = cli.runWithToken(bob.SessionToken, "game", "resign")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &game))
	require.NotNil(t, game.Result)
	assert.Equal(t, "black", game.Result.Winner)

	output, err = cli.run("leaderboard", "-n", "5")
	require.NoError(t, err, "output: %s", output)

	var board leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.NotEmpty(t, board.Players)
	assert.Equal(t, "Alice", board.Players[0].Name)
	assert.Equal(t, 1, board.Players[0].Score)
}
