package storage

import (
	"context"

	"github.com/reversi-arena/reversigo/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Identity operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Profile operations. SaveProfile maintains the name index and the
	// leaderboard ranking, including releasing a previous name on rename.
	SaveProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, playerID model.PlayerID) (*model.Profile, error)
	GetProfileByName(ctx context.Context, name string) (*model.Profile, error)
	TopProfiles(ctx context.Context, n int) ([]*model.Profile, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.GameID) (*model.Session, error)

	// Active-session index: at most one non-terminal session per player.
	// GetActiveSession returns model.ErrGameNotFound when the player is idle.
	SetActiveSession(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error
	GetActiveSession(ctx context.Context, playerID model.PlayerID) (model.GameID, error)
	ClearActiveSession(ctx context.Context, playerID model.PlayerID) error
}
