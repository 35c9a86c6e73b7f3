package descent

import (
	"fmt"

	"github.com/frickiericker/latemp"
	"github.com/frickiericker/latemp/mesh"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Problem exposes the total cost of terms over m as a gonum optimization
// problem.  The variables are the mesh positions flattened in row-major
// order.  Evaluating the problem overwrites m's positions with x.
func Problem(m *mesh.Mesh, terms ...latemp.Term) optimize.Problem {
	r, c := m.Dims()
	grad := mat.NewDense(r, c, nil)
	eval := func(x []float64) float64 {
		unflatten(m.Pos, x)
		grad.Zero()
		cost := 0.0
		for _, t := range terms {
			cost += t.Accumulate(m, grad)
		}
		return cost
	}
	return optimize.Problem{
		Func: eval,
		Grad: func(g, x []float64) {
			eval(x)
			flatten(g, grad)
		},
	}
}

// Minimize minimizes the terms over m with one of gonum's gradient based
// methods ("lbfgs", "bfgs", "cg" or "gd") and leaves the best positions
// found in m.  At most maxIter major iterations are run; maxIter <= 0 leaves
// m unchanged and reports IterationLimit.
func Minimize(m *mesh.Mesh, method string, maxIter int, terms ...latemp.Term) (*optimize.Result, error) {
	var meth optimize.Method
	switch method {
	case "lbfgs":
		meth = &optimize.LBFGS{}
	case "bfgs":
		meth = &optimize.BFGS{}
	case "cg":
		meth = &optimize.CG{}
	case "gd":
		meth = &optimize.GradientDescent{}
	default:
		return nil, fmt.Errorf("unknown optimization method %q", method)
	}

	r, c := m.Dims()
	x0 := make([]float64, r*c)
	flatten(x0, m.Pos)

	// gonum treats a zero iteration limit as no limit
	if maxIter <= 0 {
		return &optimize.Result{
			Location: optimize.Location{X: x0, F: latemp.Energy(m, terms...)},
			Status:   optimize.IterationLimit,
		}, nil
	}

	settings := &optimize.Settings{MajorIterations: maxIter}
	result, err := optimize.Minimize(Problem(m, terms...), x0, settings, meth)
	if result != nil {
		unflatten(m.Pos, result.X)
	}
	return result, err
}

// Converged reports whether a gonum run stopped because it met one of its
// convergence criteria rather than a limit or a failure.
func Converged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.FunctionThreshold, optimize.FunctionConvergence,
		optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return true
	}
	return false
}

func flatten(dst []float64, m *mat.Dense) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		copy(dst[i*c:(i+1)*c], m.RawRowView(i))
	}
}

func unflatten(m *mat.Dense, src []float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		copy(m.RawRowView(i), src[i*c:(i+1)*c])
	}
}
