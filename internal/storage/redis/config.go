package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// GuestPlayerTTL expires anonymous identities that never registered
	GuestPlayerTTL time.Duration

	// FinishedSessionTTL expires terminal sessions; the score history
	// they fed lives on in the profiles and the leaderboard.
	// Active sessions never expire.
	FinishedSessionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:                "redis://localhost:6379",
		PoolSize:           10,
		MinIdleConns:       2,
		GuestPlayerTTL:     24 * time.Hour,
		FinishedSessionTTL: 7 * 24 * time.Hour,
	}
}
