// Package bench provides synthetic meshes for exercising and timing the
// descent methods on problems shaped like the real chain and latitude grid
// inputs.
package bench

import (
	"fmt"
	"math"

	"github.com/frickiericker/latemp"
	"github.com/frickiericker/latemp/descent"
	"github.com/frickiericker/latemp/mesh"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var AllScenarios = []Scenario{
	Chain{N: 9},
	Chain{N: 73},
	Chain{N: 500},
	Latitude{Rows: 4, Cols: 8},
	Latitude{Rows: 16, Cols: 32},
	Latitude{Rows: 73, Cols: 144},
}

// Scenario builds a fresh mesh and the terms to minimize over it.  Every
// call to Mesh returns a new, unshared mesh.
type Scenario interface {
	Name() string
	Mesh() *mesh.Mesh
	Terms() []latemp.Term
	Rater() descent.Rater
}

// Chain is an N-point chain spread uniformly over [-1, 1] whose attractors
// follow a smooth bowl so the points have to bunch up near the ends.
type Chain struct {
	N int
}

func (s Chain) Name() string { return fmt.Sprintf("Chain_%v", s.N) }

func (s Chain) Mesh() *mesh.Mesh {
	pos := make([]float64, s.N)
	floats.Span(pos, 1, -1)
	attr := make([]float64, s.N)
	for i, x := range pos {
		attr[i] = math.Abs(x) * (0.8 + 0.2*x*x)
	}
	m, err := mesh.NewChain(pos, attr)
	if err != nil {
		panic(err)
	}
	return m
}

func (s Chain) Terms() []latemp.Term {
	return []latemp.Term{
		latemp.Repulsion{Potential: latemp.NewSoftcore(0.01, 1/float64(s.N))},
		latemp.Attraction{Weight: 1},
	}
}

func (s Chain) Rater() descent.Rater {
	return descent.Quenched{Initial: descent.DefaultQuenchRate, Every: 100, Factor: descent.DefaultQuenchFactor}
}

// Latitude is a Rows x Cols grid whose rows hold the latitudes of a regular
// grid from 90 to -90, tiled across all columns, with attractors that
// oscillate in longitude.  Tiling makes every row a run of equal values, so
// collisions are resolved when the mesh is built.
type Latitude struct {
	Rows, Cols int
}

func (s Latitude) Name() string { return fmt.Sprintf("Latitude_%vx%v", s.Rows, s.Cols) }

func (s Latitude) Mesh() *mesh.Mesh {
	lat := make([]float64, s.Rows)
	floats.Span(lat, 90, -90)
	pos := mat.NewDense(s.Rows, s.Cols, nil)
	attr := mat.NewDense(s.Rows, s.Cols, nil)
	for i, l := range lat {
		for j := 0; j < s.Cols; j++ {
			pos.Set(i, j, l)
			lon := 2 * math.Pi * float64(j) / float64(s.Cols)
			attr.Set(i, j, math.Abs(l)*(1+0.1*math.Sin(lon)))
		}
	}
	m, err := mesh.New(pos, attr)
	if err != nil {
		panic(err)
	}
	m.ResolveCollisions(mesh.DefaultEpsilon)
	return m
}

func (s Latitude) Terms() []latemp.Term {
	return []latemp.Term{
		latemp.Repulsion{Potential: latemp.NewHardcore(1, 1/float64(s.Rows))},
		latemp.Attraction{Weight: 1},
		latemp.Smoothing{Potential: latemp.NewSpring(5)},
	}
}

func (s Latitude) Rater() descent.Rater { return descent.Bounded{Bound: descent.DefaultBound} }

// Benchmark runs maxiter descent steps on a fresh mesh of s and returns the
// initial and final total cost.
func Benchmark(s Scenario, maxiter int) (initial, final float64, err error) {
	m := s.Mesh()
	terms := s.Terms()
	initial = latemp.Energy(m, terms...)

	opt, err := descent.New(m, descent.Terms(terms...), descent.Rate(s.Rater()))
	if err != nil {
		return initial, math.NaN(), err
	}
	solv := &descent.Solver{Optimizer: opt, MaxIter: maxiter}
	if err := solv.Run(); err != nil {
		return initial, math.NaN(), err
	}
	return initial, latemp.Energy(m, terms...), nil
}
