package descent

import (
	"math"
	"testing"

	"github.com/frickiericker/latemp"
	"github.com/frickiericker/latemp/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// constTerm adds a fixed gradient regardless of positions.
type constTerm struct {
	grad *mat.Dense
}

func (t constTerm) Accumulate(m *mesh.Mesh, grad *mat.Dense) float64 {
	grad.Add(grad, t.grad)
	return 0
}

func newChain(t *testing.T, pos, attr []float64) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewChain(pos, attr)
	require.NoError(t, err)
	return m
}

func TestZeroGradientIsIdentity(t *testing.T) {
	m := newChain(t, []float64{0.3, 0.6, 0.9}, []float64{0.3, 0.6, 0.9})
	before := mat.DenseCopyOf(m.Pos)

	// attraction is zero when every point sits on its attractor and the
	// points are further apart than the repulsion range
	opt, err := New(m,
		Terms(latemp.Attraction{Weight: 1}, latemp.Repulsion{Potential: latemp.NewSoftcore(1, 0.1)}),
		Rate(Bounded{Bound: 0.001}),
	)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := opt.Step()
		require.NoError(t, err)
	}
	assert.True(t, mat.Equal(before, m.Pos), "positions changed: %v", mat.Formatted(m.Pos))
	assert.Equal(t, 0.0, opt.LastRate())
	for _, v := range m.Pos.RawMatrix().Data {
		assert.False(t, math.IsNaN(v))
	}
}

// Step normalization uses the largest absolute gradient component.  With a
// mostly negative gradient a signed maximum would pick the small positive
// component and overshoot by a factor of 40.
func TestBoundedUsesMaxAbs(t *testing.T) {
	m := newChain(t, []float64{0, 0, 0}, []float64{0, 0, 0})
	g := mat.NewDense(1, 3, []float64{-4, 0.1, -2})
	opt, err := New(m, Terms(constTerm{g}), Rate(Bounded{Bound: 0.001}))
	require.NoError(t, err)

	_, err = opt.Step()
	require.NoError(t, err)

	assert.InDelta(t, 0.001/4, opt.LastRate(), 1e-18)
	got := m.Pos.RawRowView(0)
	assert.InDelta(t, 0.001, got[0], 1e-15)
	assert.InDelta(t, -0.000025, got[1], 1e-15)
	assert.InDelta(t, 0.0005, got[2], 1e-15)
	// no component moves further than the bound
	for _, v := range got {
		assert.LessOrEqual(t, math.Abs(v), 0.001+1e-15)
	}
}

func TestStepReturnsCostBeforeMove(t *testing.T) {
	m := newChain(t, []float64{2}, []float64{1})
	opt, err := New(m, Terms(latemp.Attraction{Weight: 1}), Rate(Quenched{Initial: 0.25}))
	require.NoError(t, err)

	cost, err := opt.Step()
	require.NoError(t, err)
	assert.Equal(t, 1.0, cost)
	// grad = 2, rate = 0.25
	assert.Equal(t, 1.5, m.Pos.At(0, 0))
	assert.Equal(t, 1, opt.Niter())
	assert.Equal(t, 2.0, opt.Grad().At(0, 0))
}

func TestGradientBufferIsReset(t *testing.T) {
	m := newChain(t, []float64{0, 0}, []float64{0, 0})
	g := mat.NewDense(1, 2, []float64{1, -1})
	opt, err := New(m, Terms(constTerm{g}), Rate(Quenched{Initial: 1}))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := opt.Step()
		require.NoError(t, err)
		assert.Equal(t, []float64{1, -1}, opt.Grad().(*mat.Dense).RawRowView(0))
	}
	assert.Equal(t, []float64{-5, 5}, m.Pos.RawRowView(0))
}

func TestNonFiniteRate(t *testing.T) {
	// coincident points put the hardcore potential at its singularity
	m := newChain(t, []float64{1, 1}, []float64{1, 1})
	opt, err := New(m, Terms(latemp.Repulsion{Potential: latemp.NewHardcore(1, 0.5)}))
	require.NoError(t, err)

	_, err = opt.Step()
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Equal(t, []float64{1, 1}, m.Pos.RawRowView(0))
}

// A three point chain sitting on its attractors pushes its outer points away
// while they are closer than the reference spacing, and the repulsion cost
// keeps falling as they separate.
func TestChainRepulsionRelaxes(t *testing.T) {
	start := []float64{0, 0.5, 1}
	m := newChain(t, start, start)
	repulsion := latemp.Repulsion{Potential: latemp.NewSoftcore(1, 1)}
	opt, err := New(m,
		Terms(repulsion, latemp.Attraction{Weight: 1}),
		Rate(Quenched{Initial: 0.01}),
	)
	require.NoError(t, err)

	_, err = opt.Step()
	require.NoError(t, err)
	prev := latemp.Energy(m, repulsion)
	require.Greater(t, prev, 0.0)

	for i := 0; i < 50; i++ {
		_, err := opt.Step()
		require.NoError(t, err)
		cost := latemp.Energy(m, repulsion)
		if cost == 0 {
			break
		}
		require.Less(t, cost, prev, "step %v", i)
		prev = cost
	}

	got := m.Pos.RawRowView(0)
	assert.Less(t, got[0], 0.0)
	assert.InDelta(t, 0.5, got[1], 1e-12)
	assert.Greater(t, got[2], 1.0)
}
