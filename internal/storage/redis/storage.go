package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reversi-arena/reversigo/internal/model"
	"github.com/reversi-arena/reversigo/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Identity operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Apply TTL only for guest identities
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	// Release the previous name on rename
	var oldName string
	if prev, err := s.GetProfile(ctx, profile.PlayerID); err == nil && prev.Name != profile.Name {
		oldName = prev.Name
	}

	// Pipeline the profile write with its name index and leaderboard rank
	pipe := s.client.Pipeline()
	if oldName != "" {
		pipe.Del(ctx, nameIndexKey(oldName))
	}
	pipe.Set(ctx, profileKey(profile.PlayerID), data, 0)
	pipe.Set(ctx, nameIndexKey(profile.Name), string(profile.PlayerID), 0)
	pipe.ZAdd(ctx, leaderboardKey(), redis.Z{
		Score:  float64(profile.Score),
		Member: string(profile.PlayerID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetProfile(ctx context.Context, playerID model.PlayerID) (*model.Profile, error) {
	data, err := s.client.Get(ctx, profileKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotRegistered
		}
		return nil, err
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Storage) GetProfileByName(ctx context.Context, name string) (*model.Profile, error) {
	playerIDStr, err := s.client.Get(ctx, nameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotRegistered
		}
		return nil, err
	}

	return s.GetProfile(ctx, model.PlayerID(playerIDStr))
}

func (s *Storage) TopProfiles(ctx context.Context, n int) ([]*model.Profile, error) {
	stop := int64(n) - 1
	if n <= 0 {
		stop = -1
	}

	playerIDs, err := s.client.ZRevRange(ctx, leaderboardKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(playerIDs) == 0 {
		return []*model.Profile{}, nil
	}

	keys := make([]string, len(playerIDs))
	for i, id := range playerIDs {
		keys[i] = profileKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	profiles := make([]*model.Profile, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Dangling leaderboard entry
		}
		var profile model.Profile
		if err := json.Unmarshal([]byte(val.(string)), &profile); err != nil {
			continue
		}
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Finished sessions expire; active sessions must not
	var ttl time.Duration
	if session.Finished() {
		ttl = s.cfg.FinishedSessionTTL
	}

	return s.client.Set(ctx, sessionKey(session.ID), data, ttl).Err()
}

func (s *Storage) GetSession(ctx context.Context, id model.GameID) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Active-session index

func (s *Storage) SetActiveSession(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error {
	return s.client.Set(ctx, activeSessionKey(playerID), string(gameID), 0).Err()
}

func (s *Storage) GetActiveSession(ctx context.Context, playerID model.PlayerID) (model.GameID, error) {
	gameIDStr, err := s.client.Get(ctx, activeSessionKey(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrGameNotFound
		}
		return "", err
	}
	return model.GameID(gameIDStr), nil
}

func (s *Storage) ClearActiveSession(ctx context.Context, playerID model.PlayerID) error {
	return s.client.Del(ctx, activeSessionKey(playerID)).Err()
}
