package blockdrop

// Snapshot is the data sent to a client for rendering.
type Snapshot struct {
	Board     Board `json:"board"`
	NextPiece Shape `json:"nextPiece"`
	NextColor Color `json:"nextColor"`
	Score     int   `json:"score"`
	Lines     int   `json:"lines"`
	Level     int   `json:"level"`
	Paused    bool  `json:"paused"`
	GameOver  bool  `json:"gameOver"`
}

// Snapshot returns the settled board with the current piece drawn over
// it. The session itself is not modified.
func (s State) Snapshot() Snapshot {
	board := Merge(s.Board, s.Piece, s.Pos)

	snap := Snapshot{
		Board:    board,
		Score:    s.Score,
		Lines:    s.Lines,
		Level:    s.Level,
		Paused:   s.Paused,
		GameOver: s.Over,
	}
	if s.Next != nil {
		snap.NextPiece = s.Next.Shape.Clone()
		snap.NextColor = s.Next.Color
	}
	return snap
}
