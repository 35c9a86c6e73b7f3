package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const eps = 0.01

func chain(t *testing.T, pos ...float64) *Mesh {
	t.Helper()
	m, err := NewChain(pos, make([]float64, len(pos)))
	require.NoError(t, err)
	return m
}

func TestResolveCollisionsTriple(t *testing.T) {
	m := chain(t, 1, 1, 1)
	n := m.ResolveCollisions(eps)

	row := m.Pos.RawRowView(0)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1.0, row[0])
	assert.InDelta(t, 1+eps, row[1], 1e-15)
	assert.InDelta(t, 1+2*eps, row[2], 1e-15)
	// first and last end up more than one epsilon apart
	assert.Greater(t, row[2]-row[0], eps)
	assert.GreaterOrEqual(t, row[2]-row[1], eps*(1-1e-9))
	assert.GreaterOrEqual(t, row[1]-row[0], eps*(1-1e-9))
}

func TestResolveCollisionsNoAdjacentEqual(t *testing.T) {
	tests := [][]float64{
		{0, 0},
		{1, 1, 1, 1, 1},
		{2, 2, 2 + eps, 5},
		{3, 1, 1, 2, 2, 2, 0},
		{-1, -1, 4, 4},
		{7},
	}
	for _, row := range tests {
		m := chain(t, row...)
		m.ResolveCollisions(eps)
		got := m.Pos.RawRowView(0)
		for j := 1; j < len(got); j++ {
			if got[j] == got[j-1] {
				t.Errorf("[ERROR] %v -> %v: entries %v and %v are equal", row, got, j-1, j)
			}
		}
	}
}

func TestResolveCollisionsLeavesDistinctValues(t *testing.T) {
	m := chain(t, 3, 1, 4, 1, 5)
	n := m.ResolveCollisions(eps)
	assert.Zero(t, n)
	assert.Equal(t, []float64{3, 1, 4, 1, 5}, m.Pos.RawRowView(0))
}

func TestResolveCollisionsRowsOnly(t *testing.T) {
	pos := mat.NewDense(2, 2, []float64{
		5, 6,
		5, 6,
	})
	m, err := New(pos, mat.NewDense(2, 2, nil))
	require.NoError(t, err)
	// vertical neighbours are never compared
	assert.Zero(t, m.ResolveCollisions(eps))

	pos = mat.NewDense(2, 3, []float64{
		2, 2, 2,
		-3, -3, 0,
	})
	m, err = New(pos, mat.NewDense(2, 3, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, m.ResolveCollisions(eps))
	assert.InDelta(t, -3+eps, m.Pos.At(1, 1), 1e-15)
	assert.Equal(t, 0.0, m.Pos.At(1, 2))
}

func TestResolveCollisionsLargeMagnitude(t *testing.T) {
	// eps is below the float spacing at 1e17
	m := chain(t, 1e17, 1e17, 1e17)
	n := m.ResolveCollisions(eps)

	row := m.Pos.RawRowView(0)
	assert.Equal(t, 2, n)
	assert.Less(t, row[0], row[1])
	assert.Less(t, row[1], row[2])
}
