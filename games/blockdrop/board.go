package blockdrop

const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Board is the grid of settled cells, indexed [row][column].
type Board [][]Color

// Position is the offset of a piece's shape origin on the board
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// StartPosition is where every new piece spawns
var StartPosition = Position{X: BoardWidth/2 - 1, Y: 0}

// NewBoard creates an empty board
func NewBoard() Board {
	board := make(Board, BoardHeight)
	for i := range board {
		board[i] = make([]Color, BoardWidth)
	}
	return board
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	board := make(Board, len(b))
	for i := range b {
		board[i] = make([]Color, len(b[i]))
		copy(board[i], b[i])
	}
	return board
}

// Occupied reports whether the cell at (x, y) holds a settled block.
// Cells outside the grid are reported empty.
func (b Board) Occupied(x, y int) bool {
	if y < 0 || y >= len(b) || x < 0 || x >= len(b[y]) {
		return false
	}
	return b[y][x] != ""
}

// rowFull reports whether every cell of the row is occupied
func rowFull(row []Color) bool {
	for _, cell := range row {
		if cell == "" {
			return false
		}
	}
	return true
}
