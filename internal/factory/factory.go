package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/reversi-arena/reversigo/internal/dependencies/clock"
	"github.com/reversi-arena/reversigo/internal/services/auth"
	"github.com/reversi-arena/reversigo/internal/services/board"
	"github.com/reversi-arena/reversigo/internal/services/game"
	"github.com/reversi-arena/reversigo/internal/services/match"
	"github.com/reversi-arena/reversigo/internal/services/registry"
	"github.com/reversi-arena/reversigo/internal/storage"
	"github.com/reversi-arena/reversigo/internal/storage/memory"
	redisstorage "github.com/reversi-arena/reversigo/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	BoardService    *board.Service
	RegistryService *registry.Service
	MatchService    *match.Service
	GameController  *game.Controller
	AuthService     *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig holds game behavior settings (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	gameCfg := cfg.GameConfig
	if gameCfg.WinAward == 0 {
		gameCfg = game.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg, gameCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	authCfg auth.Config,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	// Create services
	boardService := board.New()
	registryService := registry.New(store, clk)
	matchService := match.New(store, clk)
	gameController := game.NewController(store, boardService, registryService, clk, logger, gameCfg)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:         store,
		Clock:           clk,
		BoardService:    boardService,
		RegistryService: registryService,
		MatchService:    matchService,
		GameController:  gameController,
		AuthService:     authService,
	}
}
