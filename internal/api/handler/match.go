package handler

import (
	"encoding/json"
	"net/http"

	"github.com/reversi-arena/reversigo/internal/api/middleware"
	"github.com/reversi-arena/reversigo/internal/api/request"
	"github.com/reversi-arena/reversigo/internal/api/response"
	"github.com/reversi-arena/reversigo/internal/services/match"
)

// MatchHandler handles matchmaking endpoints
type MatchHandler struct {
	matchService *match.Service
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *match.Service) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// Request handles POST /api/v1/match
func (h *MatchHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req request.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Opponent == "" {
		WriteError(w, NewInvalidRequestError("opponent is required"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	session, err := h.matchService.RequestMatch(r.Context(), player.ID, req.Opponent)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameSessionFromModel(session))
}
