package blockdrop

// moveHorizontal shifts the piece one column when the target is free
func (e *Engine) moveHorizontal(s State, dx int) State {
	pos := Position{X: s.Pos.X + dx, Y: s.Pos.Y}
	if !Collides(s.Piece, pos, s.Board) {
		s.Pos = pos
	}
	return s
}

// moveDown drops the piece one row, landing it if the row below is taken
func (e *Engine) moveDown(s State) State {
	pos := Position{X: s.Pos.X, Y: s.Pos.Y + 1}
	if Collides(s.Piece, pos, s.Board) {
		return e.land(s)
	}
	s.Pos = pos
	return s
}

// rotate turns the piece in place. There are no wall kicks: a rotation
// that would collide is dropped.
func (e *Engine) rotate(s State) State {
	rotated := s.Piece.Rotated()
	if !Collides(rotated, s.Pos, s.Board) {
		s.Piece = rotated
	}
	return s
}

// hardDrop moves the piece to the lowest free row and lands it
func (e *Engine) hardDrop(s State) State {
	s.Pos = DropPosition(s.Piece, s.Pos, s.Board)
	return e.land(s)
}

// DropPosition returns the lowest position straight below pos that the
// piece can occupy.
func DropPosition(piece *Piece, pos Position, board Board) Position {
	for !Collides(piece, Position{X: pos.X, Y: pos.Y + 1}, board) {
		pos.Y++
	}
	return pos
}
