package contour

import (
	"errors"
	"fmt"

	"github.com/ironsheep/road-perimeter/internal/raster"
)

// Sentinel errors for boundary extraction.
var (
	// ErrNoForeground indicates a mask with nothing to trace.
	ErrNoForeground = errors.New("contour: mask has no foreground to trace")
	// ErrDegenerate indicates a boundary with fewer than 3 distinct
	// vertices, which cannot form a polygon.
	ErrDegenerate = errors.New("contour: boundary has fewer than 3 distinct vertices")
	// ErrBadTolerance indicates a negative simplification tolerance.
	ErrBadTolerance = errors.New("contour: simplification tolerance must be non-negative")
)

// Point is a pixel-space vertex. X is the column, Y the row.
type Point struct {
	X float64
	Y float64
}

// Ring is an ordered boundary polygon in pixel space. It is implicitly
// closed: the edge from the last vertex back to the first is part of the
// ring without being stored.
type Ring []Point

// SignedArea returns the shoelace area of the ring in pixel axes.
// Positive means clockwise in raster orientation (y growing downward).
func (r Ring) SignedArea() float64 {
	if len(r) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range r {
		q := r[(i+1)%len(r)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Moore neighborhood in clockwise order: E, SE, S, SW, W, NW, N, NE.
var mooreDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
var mooreDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}

// mooreIndex maps a king-move offset to its position in the clockwise
// neighborhood order.
func mooreIndex(dx, dy int) int {
	for i := 0; i < 8; i++ {
		if mooreDX[i] == dx && mooreDY[i] == dy {
			return i
		}
	}
	return 0
}

// traceState is one step of the boundary walk: the current boundary pixel
// and the background cell the walk entered it around.
type traceState struct {
	cx, cy int
	bx, by int
}

// Trace extracts the outer boundary ring of the foreground in b with
// Moore-neighbor tracing. The mask is expected to hold a single component,
// typically produced by region.Isolate; with several components only the
// one whose pixel comes first in raster-scan order is traced.
//
// The returned ring lists boundary pixel coordinates in clockwise raster
// order, starting at the first foreground pixel in scan order, without a
// closing duplicate. Components whose boundary has fewer than 3 distinct
// vertices (single pixels, dominoes) report ErrDegenerate.
func Trace(b *raster.Bitmap) (Ring, error) {
	sx, sy, ok := firstForeground(b)
	if !ok {
		return nil, ErrNoForeground
	}

	// The west neighbor of the scan-order first pixel is background, so it
	// seeds a valid backtrack.
	state := traceState{cx: sx, cy: sy, bx: sx - 1, by: sy}
	ring := Ring{{X: float64(sx), Y: float64(sy)}}
	seen := map[traceState]int{state: 0}

	for {
		next, found := step(b, state)
		if !found {
			break // lone pixel, nothing adjacent to walk to
		}
		if at, repeated := seen[next]; repeated {
			// The walk closed its loop; everything before the repeated
			// state was a lead-in, not part of the cycle.
			ring = ring[at:]
			break
		}
		seen[next] = len(ring)
		ring = append(ring, Point{X: float64(next.cx), Y: float64(next.cy)})
		state = next
	}

	if countDistinct(ring) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerate, countDistinct(ring))
	}
	// One-pixel-wide components walk out and back along the same pixels:
	// three or more distinct vertices, but nothing enclosed.
	if ring.SignedArea() == 0 {
		return nil, fmt.Errorf("%w: boundary encloses no area", ErrDegenerate)
	}

	// Clockwise raster orientation, keeping the start vertex in place.
	if ring.SignedArea() < 0 {
		for i, j := 1, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}
	return ring, nil
}

// step scans the Moore neighborhood of the current pixel clockwise,
// starting just past the backtrack cell, and moves to the first foreground
// pixel. The new backtrack is the cell examined immediately before it.
func step(b *raster.Bitmap, s traceState) (traceState, bool) {
	start := mooreIndex(s.bx-s.cx, s.by-s.cy) + 1
	px, py := s.bx, s.by
	for k := 0; k < 8; k++ {
		i := (start + k) % 8
		nx, ny := s.cx+mooreDX[i], s.cy+mooreDY[i]
		if b.At(nx, ny) {
			return traceState{cx: nx, cy: ny, bx: px, by: py}, true
		}
		px, py = nx, ny
	}
	return traceState{}, false
}

// firstForeground returns the raster-scan first foreground pixel.
func firstForeground(b *raster.Bitmap) (int, int, bool) {
	for y := 0; y < b.Height; y++ {
		row := y * b.Width
		for x := 0; x < b.Width; x++ {
			if b.Pix[row+x] != 0 {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func countDistinct(r Ring) int {
	set := make(map[Point]struct{}, len(r))
	for _, p := range r {
		set[p] = struct{}{}
	}
	return len(set)
}
