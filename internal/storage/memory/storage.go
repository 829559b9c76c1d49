package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/reversi-arena/reversigo/internal/model"
	"github.com/reversi-arena/reversigo/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on the way in and out, so callers can mutate what
// they hold without exposing uncommitted state to concurrent readers.
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	profiles          map[model.PlayerID]*model.Profile
	nameIndex         map[string]model.PlayerID
	sessions          map[model.GameID]*model.Session
	activeSessions    map[model.PlayerID]model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		profiles:          make(map[model.PlayerID]*model.Profile),
		nameIndex:         make(map[string]model.PlayerID),
		sessions:          make(map[model.GameID]*model.Session),
		activeSessions:    make(map[model.PlayerID]model.GameID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func copyPlayer(p *model.Player) *model.Player {
	c := *p
	return &c
}

func copyRegisteredPlayer(rp *model.RegisteredPlayer) *model.RegisteredPlayer {
	c := *rp
	return &c
}

func copyProfile(p *model.Profile) *model.Profile {
	c := *p
	return &c
}

func copySession(session *model.Session) *model.Session {
	c := *session
	if session.Board != nil {
		c.Board = session.Board.Clone()
	}
	c.Moves = append([]model.Move(nil), session.Moves...)
	if session.Result != nil {
		r := *session.Result
		c.Result = &r
	}
	return &c
}

// Identity operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyPlayer(player), nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = copyRegisteredPlayer(rp)
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyRegisteredPlayer(rp), nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyRegisteredPlayer(rp), nil
}

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Release the previous name on rename
	if prev, ok := s.profiles[profile.PlayerID]; ok && prev.Name != profile.Name {
		delete(s.nameIndex, prev.Name)
	}

	s.profiles[profile.PlayerID] = copyProfile(profile)
	s.nameIndex[profile.Name] = profile.PlayerID
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, playerID model.PlayerID) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[playerID]
	if !ok {
		return nil, model.ErrNotRegistered
	}
	return copyProfile(profile), nil
}

func (s *Storage) GetProfileByName(ctx context.Context, name string) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrNotRegistered
	}
	profile, ok := s.profiles[playerID]
	if !ok {
		return nil, model.ErrNotRegistered
	}
	return copyProfile(profile), nil
}

func (s *Storage) TopProfiles(ctx context.Context, n int) ([]*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]*model.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, copyProfile(p))
	}

	// Highest score first. Ties break by player ID descending, the
	// order a Redis sorted set yields equal-score members in, so both
	// backends rank identically.
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Score != profiles[j].Score {
			return profiles[i].Score > profiles[j].Score
		}
		return profiles[i].PlayerID > profiles[j].PlayerID
	})

	if n > 0 && len(profiles) > n {
		profiles = profiles[:n]
	}
	return profiles, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(session)
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.GameID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return copySession(session), nil
}

// Active-session index

func (s *Storage) SetActiveSession(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSessions[playerID] = gameID
	return nil
}

func (s *Storage) GetActiveSession(ctx context.Context, playerID model.PlayerID) (model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gameID, ok := s.activeSessions[playerID]
	if !ok {
		return "", model.ErrGameNotFound
	}
	return gameID, nil
}

func (s *Storage) ClearActiveSession(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeSessions, playerID)
	return nil
}
