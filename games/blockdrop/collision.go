package blockdrop

// Collides checks if the piece placed at pos would overlap a wall, the
// floor or a settled cell of board. Cells above the top row never
// collide with board content. A nil piece always collides.
func Collides(piece *Piece, pos Position, board Board) bool {
	if piece == nil {
		return true
	}

	for py := 0; py < len(piece.Shape); py++ {
		for px := 0; px < len(piece.Shape[py]); px++ {
			if piece.Shape[py][px] == 0 {
				continue
			}
			x := pos.X + px
			y := pos.Y + py

			if x < 0 || x >= BoardWidth || y >= BoardHeight {
				return true
			}

			if y >= 0 && board.Occupied(x, y) {
				return true
			}
		}
	}
	return false
}
