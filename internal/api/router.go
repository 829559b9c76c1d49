package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/reversi-arena/reversigo/internal/api/handler"
	"github.com/reversi-arena/reversigo/internal/api/middleware"
	"github.com/reversi-arena/reversigo/internal/services/auth"
	"github.com/reversi-arena/reversigo/internal/services/game"
	"github.com/reversi-arena/reversigo/internal/services/match"
	"github.com/reversi-arena/reversigo/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	RegistryService *registry.Service
	MatchService    *match.Service
	GameController  *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	profileHandler := handler.NewProfileHandler(cfg.RegistryService)
	matchHandler := handler.NewMatchHandler(cfg.MatchService)
	gameHandler := handler.NewGameHandler(cfg.GameController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Profile routes (claiming a name requires auth)
	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(authMiddleware)
	profile.HandleFunc("", profileHandler.Register).Methods(http.MethodPost)
	profile.HandleFunc("", profileHandler.Get).Methods(http.MethodGet)

	// Leaderboard is public
	api.HandleFunc("/leaderboard", profileHandler.Leaderboard).Methods(http.MethodGet)

	// Matchmaking (requires auth)
	matchRoute := api.PathPrefix("/match").Subrouter()
	matchRoute.Use(authMiddleware)
	matchRoute.HandleFunc("", matchHandler.Request).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/game").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.View).Methods(http.MethodGet)
	games.HandleFunc("/move", gameHandler.Move).Methods(http.MethodPost)
	games.HandleFunc("/resign", gameHandler.Resign).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
