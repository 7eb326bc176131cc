package blockdrop_test

import (
	"math/rand"
	"testing"

	"github.com/isaacjstriker/blockdrop/games/blockdrop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogDrawsEveryKind(t *testing.T) {
	c := blockdrop.NewCatalog(rand.NewSource(42))
	seen := map[string]int{}

	for i := 0; i < 500; i++ {
		p := c.Next()
		require.NotNil(t, p)
		assert.NotEmpty(t, p.Color)
		seen[p.Kind]++
	}

	assert.Len(t, seen, 7)
	for _, kind := range blockdrop.Kinds() {
		assert.Greater(t, seen[kind], 0, "kind %s never drawn", kind)
	}
}

func TestCatalogSameSeedSameSequence(t *testing.T) {
	a := blockdrop.NewCatalog(rand.NewSource(7))
	b := blockdrop.NewCatalog(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next().Kind, b.Next().Kind)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	p := blockdrop.NewPiece("O")
	p.Shape[0][0] = 0

	fresh := blockdrop.NewPiece("O")
	assert.Equal(t, 1, fresh.Shape[0][0])
}

func TestNewPieceUnknownKind(t *testing.T) {
	assert.Nil(t, blockdrop.NewPiece("X"))
}

func TestSequenceSourceCycles(t *testing.T) {
	src := blockdrop.NewSequenceSource("I", "O")
	assert.Equal(t, "I", src.Next().Kind)
	assert.Equal(t, "O", src.Next().Kind)
	assert.Equal(t, "I", src.Next().Kind)

	assert.Nil(t, blockdrop.NewSequenceSource().Next())
}

func TestRotateShape(t *testing.T) {
	tests := []struct {
		name     string
		shape    blockdrop.Shape
		expected blockdrop.Shape
	}{
		{
			name:     "I becomes vertical",
			shape:    blockdrop.Shape{{1, 1, 1, 1}},
			expected: blockdrop.Shape{{1}, {1}, {1}, {1}},
		},
		{
			name:     "T",
			shape:    blockdrop.Shape{{1, 1, 1}, {0, 1, 0}},
			expected: blockdrop.Shape{{0, 1}, {1, 1}, {0, 1}},
		},
		{
			name:     "L",
			shape:    blockdrop.Shape{{1, 1, 1}, {1, 0, 0}},
			expected: blockdrop.Shape{{1, 1}, {0, 1}, {0, 1}},
		},
		{
			name:     "O is symmetric",
			shape:    blockdrop.Shape{{1, 1}, {1, 1}},
			expected: blockdrop.Shape{{1, 1}, {1, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.shape.Rotate())
		})
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, kind := range blockdrop.Kinds() {
		t.Run(kind, func(t *testing.T) {
			p := blockdrop.NewPiece(kind)
			r := p.Rotated().Rotated().Rotated().Rotated()
			assert.True(t, p.Shape.Equal(r.Shape))
			assert.Equal(t, p.Color, r.Color)
		})
	}
}

func TestRotatedLeavesOriginalAlone(t *testing.T) {
	p := blockdrop.NewPiece("T")
	before := p.Shape.Clone()
	_ = p.Rotated()
	assert.Equal(t, before, p.Shape)
}
