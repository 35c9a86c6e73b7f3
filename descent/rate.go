package descent

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultBound        = 0.001
	DefaultQuenchRate   = 0.01
	DefaultQuenchEvery  = 3000
	DefaultQuenchFactor = 0.5
)

// Rater picks the multiplier applied to the gradient on step iter.
type Rater interface {
	Rate(iter int, grad mat.Matrix) float64
}

// Bounded scales each step so that no position moves by more than Bound:
// the rate is Bound divided by the largest absolute gradient component.  A
// zero gradient yields a zero rate, so the step leaves positions unchanged.
type Bounded struct {
	Bound float64
}

func (b Bounded) Rate(iter int, grad mat.Matrix) float64 {
	gmax := MaxAbs(grad)
	if gmax == 0 {
		return 0
	}
	return b.Bound / gmax
}

// Quenched is a fixed rate, starting at Initial, that is multiplied by
// Factor every Every steps.  The reduction happens before the step whose
// index satisfies iter%Every == Every-1.  Every <= 0 disables quenching.
type Quenched struct {
	Initial float64
	Every   int
	Factor  float64
}

func (q Quenched) Rate(iter int, grad mat.Matrix) float64 {
	if q.Every <= 0 {
		return q.Initial
	}
	return q.Initial * math.Pow(q.Factor, float64((iter+1)/q.Every))
}

// MaxAbs returns the largest absolute component of m, or NaN if any
// component is NaN.
func MaxAbs(m mat.Matrix) float64 {
	if rv, ok := m.(mat.RawMatrixer); ok {
		raw := rv.RawMatrix()
		gmax := 0.0
		for i := 0; i < raw.Rows; i++ {
			row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
			if floats.HasNaN(row) {
				return math.NaN()
			}
			gmax = math.Max(gmax, floats.Norm(row, math.Inf(1)))
		}
		return gmax
	}
	r, c := m.Dims()
	gmax := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			gmax = math.Max(gmax, math.Abs(m.At(i, j)))
		}
	}
	return gmax
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
