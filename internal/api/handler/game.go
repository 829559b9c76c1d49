package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/reversi-arena/reversigo/internal/api/middleware"
	"github.com/reversi-arena/reversigo/internal/api/request"
	"github.com/reversi-arena/reversigo/internal/api/response"
	"github.com/reversi-arena/reversigo/internal/services/game"
)

// GameHandler handles game play endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Move handles POST /api/v1/game/move
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	outcome, err := h.gameController.Move(r.Context(), player.ID, req.Row, req.Col)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResponseFromOutcome(outcome))
}

// View handles GET /api/v1/game
//
// The since query parameter is the move count from the caller's previous
// view; the response's moves list contains only what happened after it.
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	since := -1
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteError(w, NewInvalidRequestError("since must be a non-negative integer"))
			return
		}
		since = parsed
	}

	player := middleware.MustGetPlayer(r.Context())
	view, err := h.gameController.View(r.Context(), player.ID, since)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameViewFromModel(view))
}

// Resign handles POST /api/v1/game/resign
func (h *GameHandler) Resign(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	session, err := h.gameController.Resign(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSessionFromModel(session))
}
