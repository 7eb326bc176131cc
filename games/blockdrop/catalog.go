package blockdrop

import (
	"math/rand"
)

// Color is the display color of a settled or falling cell. The empty
// string marks an empty cell.
type Color string

// Shape is a rectangular 0/1 matrix of occupied cells.
type Shape [][]int

// Piece represents a falling block
type Piece struct {
	Kind  string `json:"kind"`
	Shape Shape  `json:"shape"`
	Color Color  `json:"color"`
}

type catalogEntry struct {
	kind  string
	shape Shape
	color Color
}

// The 7 block drop pieces
var catalog = []catalogEntry{
	{"I", Shape{{1, 1, 1, 1}}, "#FF6B6B"},
	{"O", Shape{{1, 1}, {1, 1}}, "#4ECDC4"},
	{"T", Shape{{1, 1, 1}, {0, 1, 0}}, "#45B7D1"},
	{"L", Shape{{1, 1, 1}, {1, 0, 0}}, "#FFA07A"},
	{"J", Shape{{1, 1, 1}, {0, 0, 1}}, "#98D8C8"},
	{"S", Shape{{1, 1, 0}, {0, 1, 1}}, "#F7DC6F"},
	{"Z", Shape{{0, 1, 1}, {1, 1, 0}}, "#BB8FCE"},
}

// PieceSource hands out the next piece to spawn.
type PieceSource interface {
	Next() *Piece
}

// Catalog draws pieces uniformly at random from the fixed set.
type Catalog struct {
	rng *rand.Rand
}

// NewCatalog creates a catalog backed by the given random source
func NewCatalog(src rand.Source) *Catalog {
	return &Catalog{rng: rand.New(src)}
}

// Next returns a fresh copy of a randomly chosen piece
func (c *Catalog) Next() *Piece {
	return NewPiece(catalog[c.rng.Intn(len(catalog))].kind)
}

// NewPiece returns the catalog piece with the given kind, or nil if
// there is no such kind.
func NewPiece(kind string) *Piece {
	for _, e := range catalog {
		if e.kind == kind {
			return &Piece{Kind: e.kind, Shape: e.shape.Clone(), Color: e.color}
		}
	}
	return nil
}

// Kinds lists the catalog piece kinds in table order
func Kinds() []string {
	kinds := make([]string, len(catalog))
	for i, e := range catalog {
		kinds[i] = e.kind
	}
	return kinds
}

// SequenceSource replays a fixed list of piece kinds, cycling when it
// runs out. Used for scripted sessions and tests.
type SequenceSource struct {
	kinds []string
	next  int
}

// NewSequenceSource creates a source cycling through kinds
func NewSequenceSource(kinds ...string) *SequenceSource {
	return &SequenceSource{kinds: kinds}
}

func (s *SequenceSource) Next() *Piece {
	if len(s.kinds) == 0 {
		return nil
	}
	p := NewPiece(s.kinds[s.next%len(s.kinds)])
	s.next++
	return p
}

// Clone returns a deep copy of the shape
func (s Shape) Clone() Shape {
	shape := make(Shape, len(s))
	for i := range s {
		shape[i] = make([]int, len(s[i]))
		copy(shape[i], s[i])
	}
	return shape
}

// Equal reports whether two shapes have the same dimensions and cells
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(o[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90 degrees: new[i][j] = old[rows-1-j][i].
func (s Shape) Rotate() Shape {
	rows := len(s)
	if rows == 0 {
		return Shape{}
	}
	cols := len(s[0])
	rotated := make(Shape, cols)

	for i := range rotated {
		rotated[i] = make([]int, rows)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rotated[c][rows-1-r] = s[r][c]
		}
	}

	return rotated
}

// Rotated returns a copy of the piece with its shape turned 90 degrees
func (p *Piece) Rotated() *Piece {
	if p == nil {
		return nil
	}
	return &Piece{Kind: p.Kind, Shape: p.Shape.Rotate(), Color: p.Color}
}
