package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrPlayerNotFound = errors.New("player not found")

	// Registry errors
	ErrNotRegistered = errors.New("player is not registered")
	ErrNameTaken     = errors.New("name is already taken")
	ErrInvalidName   = errors.New("name is empty or too long")

	// Matchmaking errors
	ErrOpponentNotFound = errors.New("opponent not found")
	ErrOpponentBusy     = errors.New("opponent already has an active game")
	ErrCallerBusy       = errors.New("caller already has an active game")

	// Game errors
	ErrGameNotFound      = errors.New("game not found")
	ErrIllegalMove       = errors.New("move does not capture any pieces")
	ErrIllegalColor      = errors.New("not this player's turn")
	ErrInvalidCoordinate = errors.New("coordinate is out of bounds")
	ErrGameFinished      = errors.New("game is already finished")
)
