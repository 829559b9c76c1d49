package model

import "time"

// GameID uniquely identifies a game session.
type GameID string

// Color is a side in a Reversi game.
type Color string

const (
	ColorBlack Color = "black"
	ColorWhite Color = "white"
)

// Piece returns the board piece for this color.
func (c Color) Piece() Piece {
	if c == ColorWhite {
		return WhitePiece
	}
	return BlackPiece
}

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == ColorBlack {
		return ColorWhite
	}
	return ColorBlack
}

// Move is a single entry in a session's move log: either a placement
// or a pass. The log is the source of truth for the board state.
type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Pass bool `json:"pass,omitempty"`
}

// Result records the outcome of a finished session. Winner is empty
// for a draw.
type Result struct {
	Winner Color `json:"winner,omitempty"`
	Draw   bool  `json:"draw,omitempty"`
	Black  int   `json:"black"`
	White  int   `json:"white"`
}

// Session is one two-player game instance. It is mutated only by the
// game controller's move step and becomes immutable once Result is set.
type Session struct {
	ID          GameID
	BlackPlayer PlayerID
	WhitePlayer PlayerID
	Board       *Board
	Turn        Color
	Moves       []Move
	Result      *Result
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Finished returns true once the session has a terminal result.
func (s *Session) Finished() bool {
	return s.Result != nil
}

// ColorOf returns the side the given player holds, or false if the
// player is not in this session.
func (s *Session) ColorOf(playerID PlayerID) (Color, bool) {
	switch playerID {
	case s.BlackPlayer:
		return ColorBlack, true
	case s.WhitePlayer:
		return ColorWhite, true
	}
	return "", false
}

// PlayerFor returns the player holding the given side.
func (s *Session) PlayerFor(color Color) PlayerID {
	if color == ColorWhite {
		return s.WhitePlayer
	}
	return s.BlackPlayer
}

// ToMove returns the player whose turn it is.
func (s *Session) ToMove() PlayerID {
	return s.PlayerFor(s.Turn)
}
