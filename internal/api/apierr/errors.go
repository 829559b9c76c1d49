package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reversi-arena/reversigo/internal/model"
	"github.com/reversi-arena/reversigo/internal/services/auth"
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
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeNotRegistered      = "NOT_REGISTERED"
	CodeNameTaken          = "NAME_TAKEN"
	CodeInvalidName        = "INVALID_NAME"
	CodeOpponentNotFound   = "OPPONENT_NOT_FOUND"
	CodeOpponentBusy       = "OPPONENT_BUSY"
	CodeCallerBusy         = "CALLER_BUSY"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeIllegalMove        = "ILLEGAL_MOVE"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeInvalidCoordinate  = "INVALID_COORDINATE"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
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

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrNotRegistered):
		return &httpError{http.StatusForbidden, APIError{CodeNotRegistered, "Register a display name first"}}
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNameTaken, "Name is already taken"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Name is empty or too long"}}
	case errors.Is(err, model.ErrOpponentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeOpponentNotFound, "Opponent not found"}}
	case errors.Is(err, model.ErrOpponentBusy):
		return &httpError{http.StatusConflict, APIError{CodeOpponentBusy, "Opponent already has an active game"}}
	case errors.Is(err, model.ErrCallerBusy):
		return &httpError{http.StatusConflict, APIError{CodeCallerBusy, "You already have an active game"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "No active game"}}
	case errors.Is(err, model.ErrIllegalMove):
		return &httpError{http.StatusConflict, APIError{CodeIllegalMove, "Move does not capture any pieces"}}
	case errors.Is(err, model.ErrIllegalColor):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidCoordinate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoordinate, "Coordinate is out of bounds"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game is already finished"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

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
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
