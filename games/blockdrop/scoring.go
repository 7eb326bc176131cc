package blockdrop

// Merge returns a copy of board with the piece written in at pos.
// Cells that land above the top row are dropped.
func Merge(board Board, piece *Piece, pos Position) Board {
	merged := board.Clone()
	if piece == nil {
		return merged
	}

	for py := 0; py < len(piece.Shape); py++ {
		for px := 0; px < len(piece.Shape[py]); px++ {
			if piece.Shape[py][px] == 0 {
				continue
			}
			y := pos.Y + py
			x := pos.X + px
			if y >= 0 && y < BoardHeight && x >= 0 && x < BoardWidth {
				merged[y][x] = piece.Color
			}
		}
	}
	return merged
}

// ClearLines removes every full row and pads the top with empty rows,
// returning the new board and how many rows were removed.
func ClearLines(board Board) (Board, int) {
	kept := make(Board, 0, BoardHeight)
	for _, row := range board {
		if rowFull(row) {
			continue
		}
		r := make([]Color, BoardWidth)
		copy(r, row)
		kept = append(kept, r)
	}

	cleared := len(board) - len(kept)

	padded := make(Board, 0, BoardHeight)
	for len(padded)+len(kept) < BoardHeight {
		padded = append(padded, make([]Color, BoardWidth))
	}
	return append(padded, kept...), cleared
}
