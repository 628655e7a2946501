package region

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ironsheep/road-perimeter/internal/raster"
)

// ErrBadBandHeight indicates a nonpositive row-band height.
var ErrBadBandHeight = errors.New("region: band height must be at least 1")

// LabelTiled computes the same labeling as Label, running the provisional
// pass concurrently over horizontal bands of at most bandHeight rows.
//
// Each band labels its rows independently in a disjoint provisional range;
// the seam row between adjacent bands then contributes equivalences to a
// shared union-find, and the canonical renumbering pass makes the result
// bit-identical to whole-raster labeling.
func LabelTiled(b *raster.Bitmap, conn Connectivity, bandHeight int) (*Labeling, error) {
	if bandHeight < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadBandHeight, bandHeight)
	}

	var starts []int
	for y := 0; y < b.Height; y += bandHeight {
		starts = append(starts, y)
	}
	if len(starts) == 0 {
		return Label(b, conn), nil
	}

	runs := make([]bandRun, len(starts))
	var wg sync.WaitGroup
	for i, y0 := range starts {
		y1 := y0 + bandHeight
		if y1 > b.Height {
			y1 = b.Height
		}
		wg.Add(1)
		go func(i, y0, y1 int) {
			defer wg.Done()
			runs[i] = bandPass(b, conn, y0, y1)
		}(i, y0, y1)
	}
	wg.Wait()

	// Lift band-local roots into one provisional space with disjoint
	// per-band ranges.
	total := int32(0)
	labels := make([]int32, len(b.Pix))
	for _, run := range runs {
		base := run.y0 * b.Width
		for j, l := range run.labels {
			if l != 0 {
				labels[base+j] = l + total
			}
		}
		total += run.count
	}

	uf := newUnionFind(total)
	for _, run := range runs[1:] {
		unionSeam(uf, conn, labels, b.Width, run.y0)
	}

	return compactLabels(b.Width, b.Height, labels, uf.find), nil
}

// unionSeam records equivalences between the first row of a band (y) and
// the last row of the band above it.
func unionSeam(uf *unionFind, conn Connectivity, labels []int32, width, y int) {
	for x := 0; x < width; x++ {
		l := labels[y*width+x]
		if l == 0 {
			continue
		}
		lo, hi := x, x
		if conn == Conn8 {
			lo, hi = x-1, x+1
		}
		for nx := lo; nx <= hi; nx++ {
			if nx < 0 || nx >= width {
				continue
			}
			if nl := labels[(y-1)*width+nx]; nl != 0 {
				uf.union(l, nl)
			}
		}
	}
}
