package descent

import (
	"math"

	"go.uber.org/zap"
)

// Solver runs an Optimizer for up to MaxIter steps.  If GradTol is positive
// the run also stops once the largest absolute gradient component of a step
// is at or below GradTol.
type Solver struct {
	Optimizer *Optimizer
	MaxIter   int
	GradTol   float64
	// LogEvery is the number of steps between progress messages.  Zero
	// disables progress logging.
	LogEvery int
	Logger   *zap.Logger

	niter     int
	cost      float64
	converged bool
	err       error
}

// Next performs one step and reports whether iteration should continue.
//
//	for s.Next() {
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
func (s *Solver) Next() bool {
	if s.err != nil || s.converged || s.niter >= s.MaxIter {
		return false
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}

	s.cost, s.err = s.Optimizer.Step()
	if s.err != nil {
		s.Logger.Error("descent step failed", zap.Int("iter", s.niter), zap.Error(s.err))
		return false
	}
	s.niter++

	gmax := MaxAbs(s.Optimizer.Grad())
	if s.LogEvery > 0 && s.niter%s.LogEvery == 0 {
		s.Logger.Debug("descent progress",
			zap.Int("iter", s.niter),
			zap.Float64("cost", s.cost),
			zap.Float64("rate", s.Optimizer.LastRate()),
			zap.Float64("gradmax", gmax),
		)
	}
	if s.GradTol > 0 && gmax <= s.GradTol {
		s.converged = true
		s.Logger.Info("descent converged", zap.Int("iter", s.niter), zap.Float64("gradmax", gmax))
		return false
	}
	return s.niter < s.MaxIter
}

// Run iterates until the solver stops and returns the first error
// encountered, if any.
func (s *Solver) Run() error {
	for s.Next() {
	}
	return s.Err()
}

func (s *Solver) Err() error { return s.err }

// Niter returns the number of completed steps.
func (s *Solver) Niter() int { return s.niter }

// Cost returns the cost evaluated by the most recent step, or NaN if no step
// was taken.
func (s *Solver) Cost() float64 {
	if s.niter == 0 {
		return math.NaN()
	}
	return s.cost
}

// Converged reports whether the run stopped on GradTol.
func (s *Solver) Converged() bool { return s.converged }
