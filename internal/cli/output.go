package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Profile:
		o.printProfile(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case Game:
		o.printGame(v)
	case MoveResult:
		o.printMoveResult(v)
	case GameView:
		o.printGameView(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID      string `json:"id"`
	IsGuest bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Profile response type
type Profile struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// Leaderboard response type
type Leaderboard struct {
	Players []Profile `json:"players"`
}

// Board response type
type Board struct {
	Cells [][]string `json:"cells"`
}

// Result response type
type Result struct {
	Winner string `json:"winner,omitempty"`
	Draw   bool   `json:"draw,omitempty"`
	Black  int    `json:"black"`
	White  int    `json:"white"`
}

// Game response type
type Game struct {
	ID          string  `json:"id"`
	BlackPlayer string  `json:"black_player"`
	WhitePlayer string  `json:"white_player"`
	Board       Board   `json:"board"`
	Turn        string  `json:"turn"`
	MoveCount   int     `json:"move_count"`
	Result      *Result `json:"result,omitempty"`
}

// MoveResult response type
type MoveResult struct {
	Status string `json:"status"`
	Game   Game   `json:"game"`
}

// Move response type
type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Pass bool `json:"pass,omitempty"`
}

// GameView response type
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

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s\n", p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printProfile(p Profile) {
	fmt.Printf("Name: %s\n", p.Name)
	fmt.Printf("Score: %d\n", p.Score)
	fmt.Printf("Player: %s\n", p.PlayerID)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Players) == 0 {
		fmt.Println("No players yet")
		return
	}
	for i, p := range l.Players {
		fmt.Printf("%2d. %-20s %d\n", i+1, p.Name, p.Score)
	}
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Black: %s\n", g.BlackPlayer)
	fmt.Printf("White: %s\n", g.WhitePlayer)
	fmt.Printf("Turn: %s\n", g.Turn)
	fmt.Printf("Moves: %d\n", g.MoveCount)
	fmt.Println()
	o.printBoard(&g.Board)
	o.printResult(g.Result)
}

func (o *Output) printMoveResult(m MoveResult) {
	switch m.Status {
	case "pass":
		fmt.Println("No legal move available - turn passed")
	case "game_over":
		fmt.Println("Game over!")
	}
	fmt.Printf("Turn: %s\n", m.Game.Turn)
	fmt.Println()
	o.printBoard(&m.Game.Board)
	o.printResult(m.Game.Result)
}

func (o *Output) printGameView(v GameView) {
	fmt.Printf("Game: %s\n", v.GameID)
	fmt.Printf("You play: %s\n", v.Color)
	if v.YourTurn {
		fmt.Println("It is your turn")
	} else {
		fmt.Printf("Waiting for %s\n", v.Turn)
	}
	fmt.Printf("Moves: %d\n", v.MoveCount)
	fmt.Println()
	o.printBoard(&v.Board)
	o.printResult(v.Result)
}

func (o *Output) printResult(r *Result) {
	if r == nil {
		return
	}
	fmt.Println()
	if r.Draw {
		fmt.Printf("Draw: %d - %d\n", r.Black, r.White)
	} else {
		fmt.Printf("Winner: %s (%d - %d)\n", r.Winner, r.Black, r.White)
	}
}

func (o *Output) printBoard(b *Board) {
	if b == nil || len(b.Cells) == 0 {
		return
	}

	size := len(b.Cells)

	// Print column headers
	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf(" %d ", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Printf(" %d |", row)
		for col := 0; col < size; col++ {
			switch b.Cells[row][col] {
			case "black":
				fmt.Print(" B ")
			case "white":
				fmt.Print(" W ")
			default:
				fmt.Print(" . ")
			}
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
