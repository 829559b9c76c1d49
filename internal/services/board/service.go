package board

import (
	"github.com/reversi-arena/reversigo/internal/model"
)

// directions are the eight capture scan lines from a placed piece.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Service implements the Reversi rules: capture detection, move
// application, pass and end-of-game detection. It is stateless; the
// board it operates on is embedded in the owning session.
type Service struct{}

// New creates a new board rules service.
func New() *Service {
	return &Service{}
}

// FlipsFor returns every opposing piece that placing color at pos would
// capture. An empty result means the placement is illegal.
func (s *Service) FlipsFor(b *model.Board, pos model.Position, color model.Color) []model.Position {
	if !b.IsValidPosition(pos) || !b.IsEmpty(pos) {
		return nil
	}

	own := color.Piece()
	opp := color.Opponent().Piece()

	var flips []model.Position
	for _, d := range directions {
		var line []model.Position
		row, col := pos.Row+d[0], pos.Col+d[1]
		for {
			p := model.Position{Row: row, Col: col}
			if !b.IsValidPosition(p) {
				line = nil
				break
			}
			switch b.Get(p) {
			case opp:
				line = append(line, p)
				row, col = row+d[0], col+d[1]
				continue
			case own:
				// Bounded line of opposing pieces; keep it
			default:
				line = nil
			}
			break
		}
		flips = append(flips, line...)
	}
	return flips
}

// IsLegal reports whether color may place a piece at pos.
func (s *Service) IsLegal(b *model.Board, pos model.Position, color model.Color) bool {
	return len(s.FlipsFor(b, pos, color)) > 0
}

// LegalMoves returns all positions where color may place a piece.
func (s *Service) LegalMoves(b *model.Board, color model.Color) []model.Position {
	var moves []model.Position
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			pos := model.Position{Row: row, Col: col}
			if s.IsLegal(b, pos, color) {
				moves = append(moves, pos)
			}
		}
	}
	return moves
}

// HasLegalMove reports whether color has at least one legal placement.
func (s *Service) HasLegalMove(b *model.Board, color model.Color) bool {
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			if s.IsLegal(b, model.Position{Row: row, Col: col}, color) {
				return true
			}
		}
	}
	return false
}

// Apply places a piece for color at pos and flips all captured pieces.
// The board is only mutated when the move is fully validated.
func (s *Service) Apply(b *model.Board, pos model.Position, color model.Color) error {
	if !b.IsValidPosition(pos) {
		return model.ErrInvalidCoordinate
	}
	flips := s.FlipsFor(b, pos, color)
	if len(flips) == 0 {
		return model.ErrIllegalMove
	}

	b.Set(pos, color.Piece())
	for _, p := range flips {
		b.Set(p, color.Piece())
	}
	return nil
}

// IsTerminal reports whether the game is over: board full or neither
// side has a legal move.
func (s *Service) IsTerminal(b *model.Board) bool {
	if b.IsFull() {
		return true
	}
	return !s.HasLegalMove(b, model.ColorBlack) && !s.HasLegalMove(b, model.ColorWhite)
}

// Replay rebuilds a board by applying a move log from the initial
// position. It validates every entry, so a board reconstructed here is
// guaranteed consistent with the log.
func (s *Service) Replay(moves []model.Move) (*model.Board, error) {
	b := model.NewBoard()
	turn := model.ColorBlack
	for _, m := range moves {
		if !m.Pass {
			if err := s.Apply(b, model.Position{Row: m.Row, Col: m.Col}, turn); err != nil {
				return nil, err
			}
		}
		turn = turn.Opponent()
	}
	return b, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	FlipsFor(b *model.Board, pos model.Position, color model.Color) []model.Position
	IsLegal(b *model.Board, pos model.Position, color model.Color) bool
	LegalMoves(b *model.Board, color model.Color) []model.Position
	HasLegalMove(b *model.Board, color model.Color) bool
	Apply(b *model.Board, pos model.Position, color model.Color) error
	IsTerminal(b *model.Board) bool
	Replay(moves []model.Move) (*model.Board, error)
}

var _ ServiceInterface = (*Service)(nil)
