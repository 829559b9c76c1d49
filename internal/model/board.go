package model

// BoardSize is the Reversi grid dimension.
const BoardSize = 8

// Piece is the contents of a single board cell.
type Piece uint8

const (
	Empty Piece = iota
	BlackPiece
	WhitePiece
)

// Position identifies a cell on the board.
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Board is the 8x8 Reversi grid. Row-major: Cells[row][col].
// The board is a cache of the move log; replaying the log from the
// initial position must always reproduce it.
type Board struct {
	Cells [BoardSize][BoardSize]Piece `json:"cells"`
}

// NewBoard returns a board in the standard Reversi starting position:
// four center pieces, white on the main diagonal.
func NewBoard() *Board {
	b := &Board{}
	b.Cells[3][3] = WhitePiece
	b.Cells[3][4] = BlackPiece
	b.Cells[4][3] = BlackPiece
	b.Cells[4][4] = WhitePiece
	return b
}

// Get returns the piece at the given position, or Empty if out of bounds.
func (b *Board) Get(pos Position) Piece {
	if !b.IsValidPosition(pos) {
		return Empty
	}
	return b.Cells[pos.Row][pos.Col]
}

// Set places a piece at the given position.
func (b *Board) Set(pos Position, piece Piece) {
	if b.IsValidPosition(pos) {
		b.Cells[pos.Row][pos.Col] = piece
	}
}

// IsValidPosition returns true if the position is within bounds.
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < BoardSize && pos.Col >= 0 && pos.Col < BoardSize
}

// IsEmpty returns true if the cell at the given position is empty.
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == Empty
}

// IsFull returns true if no cell is empty.
func (b *Board) IsFull() bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Cells[row][col] == Empty {
				return false
			}
		}
	}
	return true
}

// Count returns the number of black, white and empty cells.
func (b *Board) Count() (black, white, empty int) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			switch b.Cells[row][col] {
			case BlackPiece:
				black++
			case WhitePiece:
				white++
			default:
				empty++
			}
		}
	}
	return black, white, empty
}

// Clone returns a copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}
