package match

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/reversi-arena/reversigo/internal/dependencies/clock"
	"github.com/reversi-arena/reversigo/internal/model"
	"github.com/reversi-arena/reversigo/internal/storage"
)

// Service pairs idle players into game sessions. The requester always
// plays black and moves first.
//
// mu serializes match requests end-to-end so two concurrent requests
// cannot both observe a player as idle and pair them twice.
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu sync.Mutex
}

// ServiceInterface defines the matchmaking operations
type ServiceInterface interface {
	RequestMatch(ctx context.Context, callerID model.PlayerID, opponentName string) (*model.Session, error)
}

var _ ServiceInterface = (*Service)(nil)

// New creates a new match Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// RequestMatch starts a game between the caller and the player holding
// opponentName. Both players must be registered and idle. Matching
// against yourself or an unknown name returns ErrOpponentNotFound.
func (s *Service) RequestMatch(ctx context.Context, callerID model.PlayerID, opponentName string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := s.storage.GetProfile(ctx, callerID)
	if err != nil {
		return nil, err
	}

	opponent, err := s.storage.GetProfileByName(ctx, opponentName)
	if err != nil {
		if errors.Is(err, model.ErrNotRegistered) {
			return nil, model.ErrOpponentNotFound
		}
		return nil, err
	}
	if opponent.PlayerID == caller.PlayerID {
		return nil, model.ErrOpponentNotFound
	}

	if err := s.checkIdle(ctx, caller.PlayerID, model.ErrCallerBusy); err != nil {
		return nil, err
	}
	if err := s.checkIdle(ctx, opponent.PlayerID, model.ErrOpponentBusy); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &model.Session{
		ID:          model.GameID(uuid.NewString()),
		BlackPlayer: caller.PlayerID,
		WhitePlayer: opponent.PlayerID,
		Board:       model.NewBoard(),
		Turn:        model.ColorBlack,
		Moves:       []model.Move{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if err := s.storage.SetActiveSession(ctx, caller.PlayerID, session.ID); err != nil {
		return nil, err
	}
	if err := s.storage.SetActiveSession(ctx, opponent.PlayerID, session.ID); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Service) checkIdle(ctx context.Context, playerID model.PlayerID, busyErr error) error {
	_, err := s.storage.GetActiveSession(ctx, playerID)
	if err == nil {
		return busyErr
	}
	if errors.Is(err, model.ErrGameNotFound) {
		return nil
	}
	return err
}
