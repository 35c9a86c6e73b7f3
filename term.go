package latemp

import (
	"github.com/frickiericker/latemp/mesh"
	"gonum.org/v1/gonum/mat"
)

// Term is one weighted contribution to the total cost of a mesh.
// Accumulate adds the term's derivative with respect to every position into
// grad, which has the mesh's shape, and returns the term's cost.  The mesh
// is not modified.
type Term interface {
	Accumulate(m *mesh.Mesh, grad *mat.Dense) float64
}

// Repulsion keeps horizontally adjacent points apart.  For each pair of
// neighbours (j-1, j) in a row, Potential is evaluated at the displacement
// pos[j-1] - pos[j] and the resulting force is applied to both points with
// opposite signs.
type Repulsion struct {
	Potential Potential
}

func (t Repulsion) Accumulate(m *mesh.Mesh, grad *mat.Dense) float64 {
	r, c := m.Dims()
	cost := 0.0
	for i := 0; i < r; i++ {
		pos := m.Pos.RawRowView(i)
		g := grad.RawRowView(i)
		for j := 1; j < c; j++ {
			disp := pos[j-1] - pos[j]
			cost += t.Potential.Cost(disp)
			f := t.Potential.Grad(disp)
			g[j-1] += f
			g[j] -= f
		}
	}
	return cost
}

// Attraction pulls every point towards its attractor using a ShiftedSpring
// whose shift is the attractor value.
type Attraction struct {
	Weight float64
}

func (t Attraction) Accumulate(m *mesh.Mesh, grad *mat.Dense) float64 {
	r, c := m.Dims()
	cost := 0.0
	for i := 0; i < r; i++ {
		pos := m.Pos.RawRowView(i)
		g := grad.RawRowView(i)
		for j := 0; j < c; j++ {
			p := NewShiftedSpring(t.Weight, m.Attr.At(i, j))
			cost += p.Cost(pos[j])
			g[j] += p.Grad(pos[j])
		}
	}
	return cost
}

// Smoothing discourages jumps between vertically adjacent points in the same
// column.  It has no effect on single-row meshes.
type Smoothing struct {
	Potential Potential
}

func (t Smoothing) Accumulate(m *mesh.Mesh, grad *mat.Dense) float64 {
	r, c := m.Dims()
	cost := 0.0
	for i := 1; i < r; i++ {
		above, pos := m.Pos.RawRowView(i-1), m.Pos.RawRowView(i)
		gabove, g := grad.RawRowView(i-1), grad.RawRowView(i)
		for j := 0; j < c; j++ {
			disp := pos[j] - above[j]
			cost += t.Potential.Cost(disp)
			f := t.Potential.Grad(disp)
			g[j] += f
			gabove[j] -= f
		}
	}
	return cost
}

// Energy returns the total cost of m under terms.  Neither m nor any caller
// buffer is touched.
func Energy(m *mesh.Mesh, terms ...Term) float64 {
	r, c := m.Dims()
	scratch := mat.NewDense(r, c, nil)
	cost := 0.0
	for _, t := range terms {
		cost += t.Accumulate(m, scratch)
	}
	return cost
}
