package model

import "time"

// PlayerID uniquely identifies a caller across the system.
// It is assigned by the auth service and opaque to everything else.
type PlayerID string

// Player is an authenticated identity. It carries no game data;
// that lives in the Profile created on registration.
type Player struct {
	ID        PlayerID
	IsGuest   bool // true for anonymous identities
	CreatedAt time.Time
}

// RegisteredPlayer extends Player with login credentials.
// Stored separately so the hash is never carried around with sessions.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is a player's public game identity: a unique display name
// and a cumulative score. Profiles are never deleted; the score only
// changes when a game completes.
type Profile struct {
	PlayerID  PlayerID
	Name      string
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
