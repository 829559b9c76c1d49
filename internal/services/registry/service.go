package registry

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/reversi-arena/reversigo/internal/dependencies/clock"
	"github.com/reversi-arena/reversigo/internal/model"
	"github.com/reversi-arena/reversigo/internal/storage"
)

const (
	// MaxNameLength bounds display names stored in profiles
	MaxNameLength = 32
)

// Service manages player profiles: display names and scores.
// A profile is distinct from a player's identity - identities are minted
// by the auth service, profiles are claimed here by choosing a name.
//
// mu serializes profile writes so concurrent claims of the same name
// cannot both see it free, and score awards never lose an increment.
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu sync.Mutex
}

// ServiceInterface defines the profile operations
type ServiceInterface interface {
	Register(ctx context.Context, playerID model.PlayerID, name string) (*model.Profile, error)
	Lookup(ctx context.Context, playerID model.PlayerID) (*model.Profile, error)
	LookupByName(ctx context.Context, name string) (*model.Profile, error)
	TopPlayers(ctx context.Context, n int) ([]*model.Profile, error)
	AwardWin(ctx context.Context, playerID model.PlayerID, amount int) (*model.Profile, error)
}

var _ ServiceInterface = (*Service)(nil)

// New creates a new registry Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Register claims the given display name for the player. Registering the
// name a player already holds is a no-op; registering a new name renames
// the player and releases their old name. A name held by someone else
// returns ErrNameTaken.
func (s *Service) Register(ctx context.Context, playerID model.PlayerID, name string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return nil, model.ErrInvalidName
	}

	existing, err := s.storage.GetProfileByName(ctx, name)
	if err != nil && !errors.Is(err, model.ErrNotRegistered) {
		return nil, err
	}
	if existing != nil {
		if existing.PlayerID == playerID {
			return existing, nil
		}
		return nil, model.ErrNameTaken
	}

	now := s.clock.Now()

	profile, err := s.storage.GetProfile(ctx, playerID)
	if err != nil {
		if !errors.Is(err, model.ErrNotRegistered) {
			return nil, err
		}
		profile = &model.Profile{
			PlayerID:  playerID,
			Score:     0,
			CreatedAt: now,
		}
	}

	profile.Name = name
	profile.UpdatedAt = now

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Lookup retrieves a player's profile by identity
func (s *Service) Lookup(ctx context.Context, playerID model.PlayerID) (*model.Profile, error) {
	return s.storage.GetProfile(ctx, playerID)
}

// LookupByName retrieves a player's profile by display name
func (s *Service) LookupByName(ctx context.Context, name string) (*model.Profile, error) {
	return s.storage.GetProfileByName(ctx, strings.TrimSpace(name))
}

// TopPlayers returns up to n profiles ordered by score descending.
// n <= 0 returns all profiles.
func (s *Service) TopPlayers(ctx context.Context, n int) ([]*model.Profile, error) {
	return s.storage.TopProfiles(ctx, n)
}

// AwardWin adds amount to the player's score and returns the updated profile
func (s *Service) AwardWin(ctx context.Context, playerID model.PlayerID, amount int) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.storage.GetProfile(ctx, playerID)
	if err != nil {
		return nil, err
	}

	profile.Score += amount
	profile.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
