package blockdrop_test

import (
	"testing"

	"github.com/isaacjstriker/blockdrop/games/blockdrop"
	"github.com/stretchr/testify/assert"
)

const gray blockdrop.Color = "#808080"

// fillRow fills every cell of row y except the listed columns
func fillRow(b blockdrop.Board, y int, gaps ...int) {
	for x := 0; x < blockdrop.BoardWidth; x++ {
		b[y][x] = gray
	}
	for _, x := range gaps {
		b[y][x] = ""
	}
}

func assertDimensions(t *testing.T, b blockdrop.Board) {
	t.Helper()
	assert.Len(t, b, blockdrop.BoardHeight)
	for _, row := range b {
		assert.Len(t, row, blockdrop.BoardWidth)
	}
}

func TestMergeWritesColor(t *testing.T) {
	board := blockdrop.NewBoard()
	o := blockdrop.NewPiece("O")

	merged := blockdrop.Merge(board, o, blockdrop.Position{X: 3, Y: 18})

	assert.Equal(t, o.Color, merged[18][3])
	assert.Equal(t, o.Color, merged[18][4])
	assert.Equal(t, o.Color, merged[19][3])
	assert.Equal(t, o.Color, merged[19][4])
	assert.False(t, board.Occupied(3, 18), "input board must not change")
}

func TestMergeDropsCellsAboveTop(t *testing.T) {
	board := blockdrop.NewBoard()
	vertical := blockdrop.NewPiece("I").Rotated()

	merged := blockdrop.Merge(board, vertical, blockdrop.Position{X: 0, Y: -2})

	assert.True(t, merged.Occupied(0, 0))
	assert.True(t, merged.Occupied(0, 1))
	assert.False(t, merged.Occupied(0, 2))
	assertDimensions(t, merged)
}

func TestClearLines(t *testing.T) {
	tests := []struct {
		name     string
		full     []int
		expected int
	}{
		{"none", nil, 0},
		{"bottom", []int{19}, 1},
		{"two apart", []int{10, 19}, 2},
		{"tetris", []int{16, 17, 18, 19}, 4},
		{"top row", []int{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := blockdrop.NewBoard()
			fillRow(board, 5, 2)
			for _, y := range tt.full {
				fillRow(board, y)
			}

			cleared, n := blockdrop.ClearLines(board)

			assert.Equal(t, tt.expected, n)
			assertDimensions(t, cleared)
			for y := 0; y < tt.expected; y++ {
				assert.Equal(t, make([]blockdrop.Color, blockdrop.BoardWidth), []blockdrop.Color(cleared[y]))
			}
			// the partial row survives, shifted down by the rows cleared below it
			shift := 0
			for _, y := range tt.full {
				if y > 5 {
					shift++
				}
			}
			assert.False(t, cleared.Occupied(2, 5+shift))
			assert.True(t, cleared.Occupied(0, 5+shift))
		})
	}
}

func TestClearLinesKeepsRowOrder(t *testing.T) {
	board := blockdrop.NewBoard()
	board[17][0] = "#000001"
	fillRow(board, 18)
	board[19][0] = "#000002"

	cleared, n := blockdrop.ClearLines(board)

	assert.Equal(t, 1, n)
	assert.Equal(t, blockdrop.Color("#000001"), cleared[18][0])
	assert.Equal(t, blockdrop.Color("#000002"), cleared[19][0])
}
