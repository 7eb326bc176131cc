package blockdrop_test

import (
	"testing"

	"github.com/isaacjstriker/blockdrop/games/blockdrop"
	"github.com/stretchr/testify/assert"
)

func TestCollides(t *testing.T) {
	board := blockdrop.NewBoard()
	board[5][1] = "#FFFFFF"

	o := blockdrop.NewPiece("O")
	i := blockdrop.NewPiece("I")

	tests := []struct {
		name     string
		piece    *blockdrop.Piece
		pos      blockdrop.Position
		expected bool
	}{
		{"free at start", o, blockdrop.StartPosition, false},
		{"left wall", o, blockdrop.Position{X: -1, Y: 0}, true},
		{"flush right", o, blockdrop.Position{X: 8, Y: 0}, false},
		{"right wall", o, blockdrop.Position{X: 9, Y: 0}, true},
		{"resting on floor", o, blockdrop.Position{X: 0, Y: 18}, false},
		{"through floor", o, blockdrop.Position{X: 0, Y: 19}, true},
		{"above the top", o, blockdrop.Position{X: 0, Y: -1}, false},
		{"far above the top", i, blockdrop.Position{X: 2, Y: -10}, false},
		{"above the top but outside", i, blockdrop.Position{X: 7, Y: -3}, true},
		{"overlaps settled cell", o, blockdrop.Position{X: 0, Y: 4}, true},
		{"touches settled cell", o, blockdrop.Position{X: 2, Y: 4}, false},
		{"nil piece", nil, blockdrop.StartPosition, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, blockdrop.Collides(tt.piece, tt.pos, board))
		})
	}
}

func TestCollidesIgnoresEmptyShapeCells(t *testing.T) {
	board := blockdrop.NewBoard()
	// T is {{1,1,1},{0,1,0}}: its bottom corners are empty
	board[1][0] = "#FFFFFF"
	board[1][2] = "#FFFFFF"

	assert.False(t, blockdrop.Collides(blockdrop.NewPiece("T"), blockdrop.Position{X: 0, Y: 0}, board))
}

func TestCollidesDoesNotModifyBoard(t *testing.T) {
	board := blockdrop.NewBoard()
	before := board.Clone()
	blockdrop.Collides(blockdrop.NewPiece("Z"), blockdrop.Position{X: 3, Y: 3}, board)
	assert.Equal(t, before, board)
}
