package blockdrop

import "strings"

// State is one block drop session. It is updated by value: Apply never
// writes to the board or pieces of the state it was given.
type State struct {
	Board  Board
	Piece  *Piece
	Next   *Piece
	Pos    Position
	Score  int
	Lines  int
	Level  int
	Paused bool
	Over   bool
}

// Running reports whether gravity should be advancing the piece
func (s State) Running() bool {
	return !s.Paused && !s.Over
}

// Command is a discrete player input
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	Rotate
	HardDrop
	TogglePause
	NewGame
)

var commandNames = map[Command]string{
	MoveLeft:    "left",
	MoveRight:   "right",
	SoftDrop:    "down",
	Rotate:      "rotate",
	HardDrop:    "drop",
	TogglePause: "pause",
	NewGame:     "new",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand maps a client command name to a Command
func ParseCommand(name string) (Command, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for cmd, n := range commandNames {
		if n == name {
			return cmd, true
		}
	}
	return 0, false
}

// Engine applies commands to sessions using a set of rules and a piece
// source.
type Engine struct {
	rules  Rules
	pieces PieceSource
}

// NewEngine creates an engine
func NewEngine(rules Rules, pieces PieceSource) *Engine {
	return &Engine{rules: rules, pieces: pieces}
}

// Rules returns the rules the engine scores with
func (e *Engine) Rules() Rules {
	return e.rules
}

// NewSession returns a fresh session: empty board, zero score, level 1
// and a spawned piece.
func (e *Engine) NewSession() State {
	s := State{
		Board: NewBoard(),
		Level: 1,
		Next:  e.pieces.Next(),
	}
	return e.spawn(s)
}

// Apply returns the state that results from cmd. Commands that cannot be
// carried out leave the state unchanged.
func (e *Engine) Apply(s State, cmd Command) State {
	switch cmd {
	case NewGame:
		return e.NewSession()
	case TogglePause:
		if s.Over {
			return s
		}
		s.Paused = !s.Paused
		return s
	}

	if !s.Running() {
		return s
	}

	switch cmd {
	case MoveLeft:
		return e.moveHorizontal(s, -1)
	case MoveRight:
		return e.moveHorizontal(s, 1)
	case SoftDrop:
		return e.moveDown(s)
	case Rotate:
		return e.rotate(s)
	case HardDrop:
		return e.hardDrop(s)
	}
	return s
}

// spawn promotes the preview piece to the board and draws a new preview.
// The session ends when the new piece does not fit at the start position.
func (e *Engine) spawn(s State) State {
	s.Piece = s.Next
	s.Next = e.pieces.Next()
	s.Pos = StartPosition

	if Collides(s.Piece, s.Pos, s.Board) {
		s.Over = true
	}
	return s
}

// land merges the current piece, clears full rows, scores them at the
// level in effect before the clear and spawns the next piece.
func (e *Engine) land(s State) State {
	levelBefore := s.Level

	board, cleared := ClearLines(Merge(s.Board, s.Piece, s.Pos))
	s.Board = board
	s.Score += e.rules.LineScore(cleared, levelBefore)
	s.Lines += cleared
	s.Level = e.rules.Level(s.Lines)

	return e.spawn(s)
}
