package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/reversi-arena/reversigo/internal/api/middleware"
	"github.com/reversi-arena/reversigo/internal/api/request"
	"github.com/reversi-arena/reversigo/internal/api/response"
	"github.com/reversi-arena/reversigo/internal/services/registry"
)

// DefaultLeaderboardSize is how many players the leaderboard returns
// when the caller does not ask for a specific count
const DefaultLeaderboardSize = 10

// ProfileHandler handles display name and leaderboard endpoints
type ProfileHandler struct {
	registry *registry.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(registry *registry.Service) *ProfileHandler {
	return &ProfileHandler{
		registry: registry,
	}
}

// Register handles POST /api/v1/profile
func (h *ProfileHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	profile, err := h.registry.Register(r.Context(), player.ID, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileFromModel(profile))
}

// Get handles GET /api/v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	profile, err := h.registry.Lookup(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileFromModel(profile))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *ProfileHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	n := DefaultLeaderboardSize
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, NewInvalidRequestError("n must be a positive integer"))
			return
		}
		n = parsed
	}

	top, err := h.registry.TopPlayers(r.Context(), n)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(top))
}
