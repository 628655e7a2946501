package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/ironsheep/road-perimeter/internal/contour"
	"github.com/ironsheep/road-perimeter/internal/raster"
)

// ErrNotSimple reports a ring whose edges cross or touch, or whose
// vertices repeat. Such rings are not valid polygon boundaries.
var ErrNotSimple = errors.New("geo: polygon boundary is not simple")

// Georeference maps a pixel-space ring through tr into geographic
// coordinates. The result is explicitly closed (first vertex repeated at
// the end) and wound counter-clockwise, regardless of the input winding
// or the sign of the transform's determinant.
func Georeference(ring contour.Ring, tr raster.Affine) orb.Ring {
	out := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		x, y := tr.Apply(p.X, p.Y)
		out = append(out, orb.Point{x, y})
	}
	if len(out) > 0 && out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	if out.Orientation() == orb.CW {
		reverse(out)
	}
	return out
}

// reverse flips the ring in place. A closed ring keeps its start vertex
// because the duplicated endpoint swaps into position zero.
func reverse(r orb.Ring) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

// Validate checks that the closed ring bounds a simple polygon: at least
// three distinct vertices, no repeated vertex, and no two non-adjacent
// edges intersecting or touching. Returns an error wrapping ErrNotSimple
// otherwise.
func Validate(r orb.Ring) error {
	if len(r) < 2 || r[0] != r[len(r)-1] {
		return fmt.Errorf("%w: ring is not closed", ErrNotSimple)
	}
	verts := r[:len(r)-1]
	if len(verts) < 3 {
		return fmt.Errorf("%w: only %d distinct vertices", ErrNotSimple, len(verts))
	}
	seen := make(map[orb.Point]struct{}, len(verts))
	for _, p := range verts {
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: vertex (%g, %g) repeats", ErrNotSimple, p[0], p[1])
		}
		seen[p] = struct{}{}
	}
	n := len(verts)
	for i := 0; i < n; i++ {
		a1, a2 := verts[i], verts[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the closure
			}
			b1, b2 := verts[j], verts[(j+1)%n]
			if segmentsTouch(a1, a2, b1, b2) {
				return fmt.Errorf("%w: edges %d and %d intersect", ErrNotSimple, i, j)
			}
		}
	}
	return nil
}

// segmentsTouch reports whether segments a1-a2 and b1-b2 share any point,
// including endpoint contact and collinear overlap.
func segmentsTouch(a1, a2, b1, b2 orb.Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(b1, b2, a1):
		return true
	case d2 == 0 && onSegment(b1, b2, a2):
		return true
	case d3 == 0 && onSegment(a1, a2, b1):
		return true
	case d4 == 0 && onSegment(a1, a2, b2):
		return true
	}
	return false
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p orb.Point) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// onSegment reports whether p, already known collinear with a-b, lies
// within the segment's bounding box.
func onSegment(a, b, p orb.Point) bool {
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}
