package contour

import (
	"fmt"
	"math"
)

// Simplify reduces a closed ring with the Douglas–Peucker algorithm:
// vertices whose removal perturbs the boundary by at most epsilon pixels
// are dropped. Epsilon zero removes only collinear vertices.
//
// The ring is anchored at its start vertex and at the vertex farthest from
// it, and each half is simplified as an open chain, so a closed boundary
// cannot collapse onto a single chord. If fewer than 3 distinct vertices
// survive, the boundary has degenerated and ErrDegenerate is reported.
func Simplify(ring Ring, epsilon float64) (Ring, error) {
	if epsilon < 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadTolerance, epsilon)
	}
	if countDistinct(ring) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerate, countDistinct(ring))
	}

	far := farthestFrom(ring, 0)
	if far == 0 {
		// Every vertex coincides with the start; unreachable past the
		// distinct-count gate, kept as a guard for hand-built rings.
		return nil, fmt.Errorf("%w: ring has no extent", ErrDegenerate)
	}

	first := douglasPeucker(ring[:far+1], epsilon)

	back := make(Ring, 0, len(ring)-far+1)
	back = append(back, ring[far:]...)
	back = append(back, ring[0])
	second := douglasPeucker(back, epsilon)

	out := make(Ring, 0, len(first)+len(second))
	out = append(out, first...)
	if len(second) > 2 {
		out = append(out, second[1:len(second)-1]...)
	}

	if countDistinct(out) < 3 || out.SignedArea() == 0 {
		return nil, fmt.Errorf("%w: %d distinct vertices after simplification with epsilon %g",
			ErrDegenerate, countDistinct(out), epsilon)
	}
	return out, nil
}

// farthestFrom returns the index of the vertex with the greatest distance
// from ring[anchor], preferring the lowest index on ties.
func farthestFrom(ring Ring, anchor int) int {
	best, bestDist := anchor, 0.0
	a := ring[anchor]
	for i, p := range ring {
		d := math.Hypot(p.X-a.X, p.Y-a.Y)
		if d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// douglasPeucker simplifies an open chain, always keeping both endpoints.
// An explicit segment stack replaces recursion.
func douglasPeucker(chain Ring, epsilon float64) Ring {
	if len(chain) < 3 {
		return append(Ring(nil), chain...)
	}

	keep := make([]bool, len(chain))
	keep[0], keep[len(chain)-1] = true, true

	type span struct{ lo, hi int }
	stack := []span{{0, len(chain) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDist, maxIdx := 0.0, -1
		for i := s.lo + 1; i < s.hi; i++ {
			if d := pointSegmentDistance(chain[i], chain[s.lo], chain[s.hi]); d > maxDist {
				maxDist, maxIdx = d, i
			}
		}
		if maxIdx >= 0 && maxDist > epsilon {
			keep[maxIdx] = true
			stack = append(stack, span{s.lo, maxIdx}, span{maxIdx, s.hi})
		}
	}

	out := make(Ring, 0, len(chain))
	for i, k := range keep {
		if k {
			out = append(out, chain[i])
		}
	}
	return out
}

// pointSegmentDistance returns the distance from p to the segment ab,
// clamping the projection to the segment; coincident endpoints reduce to
// point distance.
func pointSegmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
