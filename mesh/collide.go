package mesh

import "math"

// DefaultEpsilon is the separation ResolveCollisions puts between coincident
// neighbours.
const DefaultEpsilon = 0.01

// ResolveCollisions separates exactly coincident horizontal neighbours so the
// pair potentials are never evaluated at zero distance.  Each row is scanned
// once from left to right.  An entry equal to its left neighbour's original
// value, or to the left neighbour after that one was moved, is placed eps to
// the right of the left neighbour.  A run of equal values therefore becomes
// an increasing staircase: [a a a] -> [a a+eps a+2eps].  The number of moved
// entries is returned.
func (m *Mesh) ResolveCollisions(eps float64) int {
	r, c := m.Dims()
	n := 0
	for i := 0; i < r; i++ {
		row := m.Pos.RawRowView(i)
		prev := row[0]
		for j := 1; j < c; j++ {
			orig := row[j]
			if orig == prev || orig == row[j-1] {
				row[j] = above(row[j-1], eps)
				n++
			}
			prev = orig
		}
	}
	return n
}

// above returns x+eps, or the next float after x when eps is lost to
// rounding at the magnitude of x.
func above(x, eps float64) float64 {
	if y := x + eps; y > x {
		return y
	}
	return math.Nextafter(x, math.Inf(1))
}
