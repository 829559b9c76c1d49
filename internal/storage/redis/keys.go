package redis

import (
	"fmt"

	"github.com/reversi-arena/reversigo/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "reversi"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// profileKey returns the Redis key for a Profile
func profileKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, playerID)
}

// nameIndexKey returns the Redis key for the display name -> player_id index
func nameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:name:%s", keyPrefix, name)
}

// leaderboardKey returns the Redis key for the score sorted set
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}

// sessionKey returns the Redis key for a Session
func sessionKey(id model.GameID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// activeSessionKey returns the Redis key for the player -> active game index
func activeSessionKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:active:%s", keyPrefix, playerID)
}
