package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/reversi-arena/reversigo/internal/dependencies/clock"
	"github.com/reversi-arena/reversigo/internal/model"
	"github.com/reversi-arena/reversigo/internal/services/board"
	"github.com/reversi-arena/reversigo/internal/services/registry"
	"github.com/reversi-arena/reversigo/internal/storage"
)

// MoveStatus reports what a move attempt resulted in
type MoveStatus string

const (
	// MoveOK - the move was applied and play passed to the opponent
	MoveOK MoveStatus = "ok"
	// MovePass - the player had no legal move and the turn was forfeited
	MovePass MoveStatus = "pass"
	// MoveGameOver - the move was applied and ended the game
	MoveGameOver MoveStatus = "game_over"
)

// MoveOutcome is the result of a successful move attempt
type MoveOutcome struct {
	Status  MoveStatus     `json:"status"`
	Session *model.Session `json:"session"`
}

// GameView is a player's read of their current game. MoveCount lets
// clients poll cheaply: pass it back as since and Changed reports
// whether anything happened in between.
type GameView struct {
	GameID    model.GameID   `json:"game_id"`
	Color     model.Color    `json:"color"`
	Board     *model.Board   `json:"board"`
	Turn      model.Color    `json:"turn"`
	YourTurn  bool           `json:"your_turn"`
	MoveCount int            `json:"move_count"`
	Changed   bool           `json:"changed"`
	Result    *model.Result  `json:"result,omitempty"`
	Moves     []model.Move   `json:"moves"`
}

// Config holds game behavior tunables
type Config struct {
	// WinAward is added to the winner's score when a game ends.
	// Draws award nothing.
	WinAward int
}

// DefaultConfig returns the default game configuration
func DefaultConfig() Config {
	return Config{
		WinAward: 1,
	}
}

// Controller manages turn flow for active sessions.
//
// mu serializes the load-validate-mutate-save cycle of every mutating
// operation, so no two moves can both read the same turn before either
// commits. Views take the read side and only ever observe committed
// sessions.
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	registry     *registry.Service
	clock        clock.Clock
	logger       *slog.Logger
	winAward     int

	mu sync.RWMutex
}

// ControllerInterface defines the game operations
type ControllerInterface interface {
	Move(ctx context.Context, callerID model.PlayerID, row, col int) (*MoveOutcome, error)
	View(ctx context.Context, callerID model.PlayerID, since int) (*GameView, error)
	Resign(ctx context.Context, callerID model.PlayerID) (*model.Session, error)
}

var _ ControllerInterface = (*Controller)(nil)

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	registry *registry.Service,
	clock clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	if cfg.WinAward == 0 {
		cfg.WinAward = DefaultConfig().WinAward
	}
	return &Controller{
		storage:      storage,
		boardService: boardService,
		registry:     registry,
		clock:        clock,
		logger:       logger,
		winAward:     cfg.WinAward,
	}
}

// Move attempts to place a piece for the caller at (row, col).
//
// If the caller has no legal move anywhere, the turn is forfeited and
// the move returns MovePass regardless of the coordinate given. The
// coordinate is only validated once we know a legal move exists.
func (c *Controller) Move(ctx context.Context, callerID model.PlayerID, row, col int) (*MoveOutcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, color, err := c.activeSession(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if session.Turn != color {
		return nil, model.ErrIllegalColor
	}

	if !c.boardService.HasLegalMove(session.Board, color) {
		return c.pass(ctx, session, color)
	}

	pos := model.Position{Row: row, Col: col}
	if !session.Board.IsValidPosition(pos) {
		return nil, model.ErrInvalidCoordinate
	}
	if err := c.boardService.Apply(session.Board, pos, color); err != nil {
		return nil, err
	}

	session.Moves = append(session.Moves, model.Move{Row: row, Col: col})
	session.Turn = color.Opponent()
	session.UpdatedAt = c.clock.Now()

	status := MoveOK
	if c.boardService.IsTerminal(session.Board) {
		c.score(session)
		status = MoveGameOver
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if session.Finished() {
		if err := c.settle(ctx, session); err != nil {
			return nil, err
		}
	}

	c.logger.Info("move applied",
		slog.String("game_id", string(session.ID)),
		slog.String("player_id", string(callerID)),
		slog.Int("row", row),
		slog.Int("col", col),
		slog.String("status", string(status)),
	)

	return &MoveOutcome{Status: status, Session: session}, nil
}

// pass forfeits the caller's turn. If the opponent cannot move either
// the board is dead and the game ends.
func (c *Controller) pass(ctx context.Context, session *model.Session, color model.Color) (*MoveOutcome, error) {
	session.Moves = append(session.Moves, model.Move{Pass: true})
	session.Turn = color.Opponent()
	session.UpdatedAt = c.clock.Now()

	status := MovePass
	if c.boardService.IsTerminal(session.Board) {
		c.score(session)
		status = MoveGameOver
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if session.Finished() {
		if err := c.settle(ctx, session); err != nil {
			return nil, err
		}
	}

	c.logger.Info("turn forfeited",
		slog.String("game_id", string(session.ID)),
		slog.String("color", string(color)),
		slog.String("status", string(status)),
	)

	return &MoveOutcome{Status: status, Session: session}, nil
}

// View returns the caller's read of their active game. Once a game
// finishes the caller is idle again and View returns ErrGameNotFound;
// the final board and result arrive on the move or resign response
// that ended it. since is the MoveCount from a previous view; pass a
// negative value to always get Changed=true.
func (c *Controller) View(ctx context.Context, callerID model.PlayerID, since int) (*GameView, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	session, color, err := c.activeSession(ctx, callerID)
	if err != nil {
		return nil, err
	}

	moves := session.Moves
	if since > 0 && since <= len(moves) {
		moves = moves[since:]
	}

	return &GameView{
		GameID:    session.ID,
		Color:     color,
		Board:     session.Board,
		Turn:      session.Turn,
		YourTurn:  !session.Finished() && session.Turn == color,
		MoveCount: len(session.Moves),
		Changed:   len(session.Moves) != since,
		Result:    session.Result,
		Moves:     moves,
	}, nil
}

// Resign ends the caller's active game with the opponent as winner
func (c *Controller) Resign(ctx context.Context, callerID model.PlayerID) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, color, err := c.activeSession(ctx, callerID)
	if err != nil {
		return nil, err
	}

	black, white, _ := session.Board.Count()
	session.Result = &model.Result{
		Winner: color.Opponent(),
		Black:  black,
		White:  white,
	}
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if err := c.settle(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("player resigned",
		slog.String("game_id", string(session.ID)),
		slog.String("player_id", string(callerID)),
	)

	return session, nil
}

// activeSession resolves the caller's current game and their color in it
func (c *Controller) activeSession(ctx context.Context, callerID model.PlayerID) (*model.Session, model.Color, error) {
	gameID, err := c.storage.GetActiveSession(ctx, callerID)
	if err != nil {
		return nil, "", err
	}
	session, err := c.storage.GetSession(ctx, gameID)
	if err != nil {
		return nil, "", err
	}
	color, ok := session.ColorOf(callerID)
	if !ok {
		return nil, "", model.ErrGameNotFound
	}
	return session, color, nil
}

// score sets the result for a terminal board: more pieces wins
func (c *Controller) score(session *model.Session) {
	black, white, _ := session.Board.Count()
	result := &model.Result{
		Black: black,
		White: white,
	}
	switch {
	case black > white:
		result.Winner = model.ColorBlack
	case white > black:
		result.Winner = model.ColorWhite
	default:
		result.Draw = true
	}
	session.Result = result
}

// settle clears the active index for both players and pays out the winner
func (c *Controller) settle(ctx context.Context, session *model.Session) error {
	for _, id := range []model.PlayerID{session.BlackPlayer, session.WhitePlayer} {
		if err := c.storage.ClearActiveSession(ctx, id); err != nil {
			return err
		}
	}

	if session.Result.Draw {
		c.logger.Info("game drawn",
			slog.String("game_id", string(session.ID)),
			slog.Int("black", session.Result.Black),
			slog.Int("white", session.Result.White),
		)
		return nil
	}

	winnerID := session.PlayerFor(session.Result.Winner)
	if _, err := c.registry.AwardWin(ctx, winnerID, c.winAward); err != nil {
		// A winner without a profile should be impossible since matchmaking
		// requires registration, but don't fail the game over the payout.
		if !errors.Is(err, model.ErrNotRegistered) {
			return err
		}
	}

	c.logger.Info("game finished",
		slog.String("game_id", string(session.ID)),
		slog.String("winner", string(session.Result.Winner)),
		slog.Int("black", session.Result.Black),
		slog.Int("white", session.Result.White),
	)
	return nil
}
