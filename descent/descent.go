// Package descent moves mesh positions down the gradient of a sum of terms.
// An Optimizer performs single steps; a Solver drives an Optimizer for a
// fixed number of iterations or until the gradient is small enough.
package descent

import (
	"database/sql"
	"errors"

	"github.com/frickiericker/latemp"
	"github.com/frickiericker/latemp/mesh"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// ErrNonFinite is returned by Step when the step rate is NaN or infinite,
// which happens when a potential was evaluated at a singularity.
var ErrNonFinite = errors.New("step rate is not finite")

type Option func(*Optimizer)

// Terms sets the terms whose sum is minimized.
func Terms(terms ...latemp.Term) Option {
	return func(o *Optimizer) {
		o.terms = append(o.terms, terms...)
	}
}

// Rate sets the step rate schedule.  The default is Bounded{DefaultBound}.
func Rate(r Rater) Option {
	return func(o *Optimizer) {
		o.Rater = r
	}
}

// DB records every step into the trace tables of db.
func DB(db *sql.DB) Option {
	return func(o *Optimizer) {
		o.Db = db
	}
}

// RunID sets the run identifier written to the trace tables.  A random one
// is generated when unset.
func RunID(id string) Option {
	return func(o *Optimizer) {
		o.RunID = id
	}
}

type Optimizer struct {
	Mesh  *mesh.Mesh
	Rater Rater
	Db    *sql.DB
	RunID string

	terms []latemp.Term
	grad  *mat.Dense
	count int
	rate  float64
}

// New creates an optimizer for m.  The optimizer keeps a reference to m and
// updates its positions in place on every step.
func New(m *mesh.Mesh, opts ...Option) (*Optimizer, error) {
	r, c := m.Dims()
	o := &Optimizer{
		Mesh:  m,
		Rater: Bounded{Bound: DefaultBound},
		grad:  mat.NewDense(r, c, nil),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if err := o.initdb(); err != nil {
		return nil, err
	}
	return o, nil
}

// Step computes the gradient of all terms at the current positions and moves
// the positions against it by the rate the Rater picks.  It returns the
// total cost evaluated before the move.  The step is recorded before the
// positions change, so a failed step leaves the mesh and Niter untouched.
func (o *Optimizer) Step() (cost float64, err error) {
	cost = o.Gradient()

	o.rate = o.Rater.Rate(o.count, o.grad)
	if !finite(o.rate) {
		return cost, ErrNonFinite
	}
	if err := o.updateDb(cost); err != nil {
		return cost, err
	}

	r, _ := o.Mesh.Dims()
	for i := 0; i < r; i++ {
		pos := o.Mesh.Pos.RawRowView(i)
		for j, g := range o.grad.RawRowView(i) {
			pos[j] -= o.rate * g
		}
	}

	o.count++
	return cost, nil
}

// Gradient recomputes the gradient buffer at the current positions without
// moving anything and returns the total cost.
func (o *Optimizer) Gradient() (cost float64) {
	o.grad.Zero()
	for _, t := range o.terms {
		cost += t.Accumulate(o.Mesh, o.grad)
	}
	return cost
}

// Grad returns the gradient computed by the most recent step.  The returned
// matrix is owned by the optimizer and is overwritten by the next step.
func (o *Optimizer) Grad() mat.Matrix { return o.grad }

// LastRate returns the rate used by the most recent step.
func (o *Optimizer) LastRate() float64 { return o.rate }

// Niter returns the number of completed steps.
func (o *Optimizer) Niter() int { return o.count }
