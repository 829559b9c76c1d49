package response

import (
	"github.com/reversi-arena/reversigo/internal/model"
	"github.com/reversi-arena/reversigo/internal/services/auth"
	"github.com/reversi-arena/reversigo/internal/services/game"
)

// Player represents a player identity in API responses
type Player struct {
	ID      string `json:"id"`
	IsGuest bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:      string(p.ID),
		IsGuest: p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Profile represents a player profile
type Profile struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// ProfileFromModel converts a model.Profile
func ProfileFromModel(p *model.Profile) Profile {
	return Profile{
		PlayerID: string(p.PlayerID),
		Name:     p.Name,
		Score:    p.Score,
	}
}

// Leaderboard is the response for the leaderboard endpoint
type Leaderboard struct {
	Players []Profile `json:"players"`
}

// LeaderboardFromModel converts a ranked profile list
func LeaderboardFromModel(profiles []*model.Profile) Leaderboard {
	players := make([]Profile, len(profiles))
	for i, p := range profiles {
		players[i] = ProfileFromModel(p)
	}
	return Leaderboard{Players: players}
}

// Board represents a game board. Empty cells are empty strings,
// occupied cells hold "black" or "white".
type Board struct {
	Cells [][]string `json:"cells"`
}

// BoardFromModel converts model.Board to response Board
func BoardFromModel(b *model.Board) Board {
	cells := make([][]string, model.BoardSize)
	for row := 0; row < model.BoardSize; row++ {
		cells[row] = make([]string, model.BoardSize)
		for col := 0; col < model.BoardSize; col++ {
			switch b.Cells[row][col] {
			case model.BlackPiece:
				cells[row][col] = string(model.ColorBlack)
			case model.WhitePiece:
				cells[row][col] = string(model.ColorWhite)
			}
		}
	}
	return Board{Cells: cells}
}

// Move represents a logged move
type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Pass bool `json:"pass,omitempty"`
}

// MoveFromModel converts a model.Move
func MoveFromModel(m model.Move) Move {
	return Move{Row: m.Row, Col: m.Col, Pass: m.Pass}
}

// Result represents a finished game's outcome
type Result struct {
	Winner string `json:"winner,omitempty"`
	Draw   bool   `json:"draw,omitempty"`
	Black  int    `json:"black"`
	White  int    `json:"white"`
}

// ResultFromModel converts a model.Result
func ResultFromModel(r *model.Result) *Result {
	if r == nil {
		return nil
	}
	return &Result{
		Winner: string(r.Winner),
		Draw:   r.Draw,
		Black:  r.Black,
		White:  r.White,
	}
}

// GameSession represents a game session
type GameSession struct {
	ID          string  `json:"id"`
	BlackPlayer string  `json:"black_player"`
	WhitePlayer string  `json:"white_player"`
	Board       Board   `json:"board"`
	Turn        string  `json:"turn"`
	MoveCount   int     `json:"move_count"`
	Result      *Result `json:"result,omitempty"`
}

// GameSessionFromModel converts a model.Session
func GameSessionFromModel(s *model.Session) GameSession {
	return GameSession{
		ID:          string(s.ID),
		BlackPlayer: string(s.BlackPlayer),
		WhitePlayer: string(s.WhitePlayer),
		Board:       BoardFromModel(s.Board),
		Turn:        string(s.Turn),
		MoveCount:   len(s.Moves),
		Result:      ResultFromModel(s.Result),
	}
}

// MoveResponse is the response after a move attempt
type MoveResponse struct {
	Status string      `json:"status"`
	Game   GameSession `json:"game"`
}

// MoveResponseFromOutcome converts a move outcome
func MoveResponseFromOutcome(o *game.MoveOutcome) MoveResponse {
	return MoveResponse{
		Status: string(o.Status),
		Game:   GameSessionFromModel(o.Session),
	}
}

// GameView is a player's polling view of their active game
type GameView struct {
	GameID    string  `json:"game_id"`
	Color     string  `json:"color"`
	Board     Board   `json:"board"`
	Turn      string  `json:"turn"`
	YourTurn  bool    `json:"your_turn"`
	MoveCount int     `json:"move_count"`
	Changed   bool    `json:"changed"`
	Moves     []Move  `json:"moves"`
	Result    *Result `json:"result,omitempty"`
}

// GameViewFromModel converts a game view projection
func GameViewFromModel(v *game.GameView) GameView {
	moves := make([]Move, len(v.Moves))
	for i, m := range v.Moves {
		moves[i] = MoveFromModel(m)
	}
	return GameView{
		GameID:    string(v.GameID),
		Color:     string(v.Color),
		Board:     BoardFromModel(v.Board),
		Turn:      string(v.Turn),
		YourTurn:  v.YourTurn,
		MoveCount: v.MoveCount,
		Changed:   v.Changed,
		Moves:     moves,
		Result:    ResultFromModel(v.Result),
	}
}
