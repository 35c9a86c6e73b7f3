// Package latemp lays out point sets by minimizing sums of pairwise and
// point-wise potentials.  Potentials are the pure energy/gradient evaluators;
// Terms apply them across a mesh and accumulate gradients for the descent
// package.
package latemp

import "math"

// Potential evaluates an energy and its derivative for a scalar
// displacement or distance.  Grad must be the exact derivative of Cost.
type Potential interface {
	Cost(x float64) float64
	Grad(x float64) float64
}

// PotentialFunc adapts a pair of plain functions to the Potential interface.
type PotentialFunc struct {
	CostFn func(float64) float64
	GradFn func(float64) float64
}

func (p PotentialFunc) Cost(x float64) float64 { return p.CostFn(x) }

func (p PotentialFunc) Grad(x float64) float64 { return p.GradFn(x) }

// Softcore penalizes two points that come closer than a reference distance
// with a smooth cubic falloff.  It is zero once |x| >= the reference
// distance.
type Softcore struct {
	weight     float64
	normalizer float64
}

func NewSoftcore(weight, distance float64) Softcore {
	return Softcore{weight: weight, normalizer: 1 / (distance * distance)}
}

func (p Softcore) Cost(x float64) float64 {
	o := p.overlap(x)
	return p.weight * o * o * o
}

func (p Softcore) Grad(x float64) float64 {
	o := p.overlap(x)
	return -6 * p.weight * p.normalizer * o * o * x
}

func (p Softcore) overlap(x float64) float64 {
	return math.Max(0, 1-p.normalizer*x*x)
}

// Hardcore is a 6-12 type repulsion that vanishes at the cutoff distance and
// grows steeply as the distance goes to zero.  The input is a signed
// separation; the potential only depends on its magnitude.  Zero separation
// yields a non-finite result.
type Hardcore struct {
	weight float64
	cutoff float64
}

func NewHardcore(weight, cutoff float64) Hardcore {
	return Hardcore{weight: weight, cutoff: cutoff}
}

func (p Hardcore) Cost(x float64) float64 {
	u6 := p.u6(x)
	return p.weight * ((u6-2)*u6 + 1)
}

func (p Hardcore) Grad(x float64) float64 {
	u6 := p.u6(x)
	return -12 * p.weight * (u6*u6 - u6) / x
}

func (p Hardcore) u6(x float64) float64 {
	u := math.Max(1, p.cutoff/math.Abs(x))
	u3 := u * u * u
	return u3 * u3
}

// Spring pulls a displacement towards zero.
type Spring struct {
	weight float64
}

func NewSpring(weight float64) Spring { return Spring{weight: weight} }

func (p Spring) Cost(x float64) float64 { return p.weight * x * x }

func (p Spring) Grad(x float64) float64 { return 2 * p.weight * x }

// ShiftedSpring pulls the magnitude of x towards shift.  The gradient takes
// the sign of x, not of the dispersion |x| - shift.
type ShiftedSpring struct {
	weight float64
	shift  float64
}

func NewShiftedSpring(weight, shift float64) ShiftedSpring {
	return ShiftedSpring{weight: weight, shift: shift}
}

func (p ShiftedSpring) Cost(x float64) float64 {
	d := math.Abs(x) - p.shift
	return p.weight * d * d
}

func (p ShiftedSpring) Grad(x float64) float64 {
	return 2 * p.weight * sign(x) * (math.Abs(x) - p.shift)
}

// sign returns -1 when the sign bit of x is set and +1 otherwise, so
// sign(0) == 1.
func sign(x float64) float64 {
	if math.Signbit(x) {
		return -1
	}
	return 1
}
