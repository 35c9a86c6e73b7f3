// Package mesh holds the position and attractor fields that are optimized
// together and the preprocessing and validation passes that run before and
// after an optimization.
package mesh

import (
	"errors"
	"fmt"

	"github.com/frickiericker/latemp/grid"
	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when positions and attractors do not share the same
// number of rows and columns.
var ErrShape = errors.New("position and attractor dimension mismatch")

// Mesh pairs a mutable position field with the attractor field it is pulled
// towards.  A 1-D chain is a mesh with a single row.  Attr must not be
// modified once the mesh is created.
type Mesh struct {
	Pos  *mat.Dense
	Attr *mat.Dense
}

// New creates a mesh from the given fields.  The fields are not copied.
func New(pos, attr *mat.Dense) (*Mesh, error) {
	if pos == nil || attr == nil {
		return nil, errors.New("mesh requires both positions and attractors")
	}
	pr, pc := pos.Dims()
	ar, ac := attr.Dims()
	if pr != ar || pc != ac {
		return nil, fmt.Errorf("%w: positions %vx%v, attractors %vx%v", ErrShape, pr, pc, ar, ac)
	}
	return &Mesh{Pos: pos, Attr: attr}, nil
}

// NewChain creates a single-row mesh from position and attractor slices.
// Both slices are copied.
func NewChain(pos, attr []float64) (*Mesh, error) {
	if len(pos) == 0 {
		return nil, errors.New("chain has no points")
	}
	if len(pos) != len(attr) {
		return nil, fmt.Errorf("%w: %v positions, %v attractors", ErrShape, len(pos), len(attr))
	}
	p := mat.NewDense(1, len(pos), append([]float64{}, pos...))
	a := mat.NewDense(1, len(attr), append([]float64{}, attr...))
	return &Mesh{Pos: p, Attr: a}, nil
}

// Load reads the position and attractor grids from the text files at posPath
// and attrPath.
func Load(posPath, attrPath string) (*Mesh, error) {
	pos, err := grid.LoadFile(posPath)
	if err != nil {
		return nil, err
	}
	attr, err := grid.LoadFile(attrPath)
	if err != nil {
		return nil, err
	}
	return New(pos, attr)
}

// Dims returns the number of rows and columns of the mesh.
func (m *Mesh) Dims() (r, c int) { return m.Pos.Dims() }
