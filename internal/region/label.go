package region

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/road-perimeter/internal/raster"
)

// ErrBadConnectivity indicates a connectivity mode other than 4 or 8.
var ErrBadConnectivity = errors.New("region: connectivity must be 4 or 8")

// Connectivity selects which neighbors join pixels into one component.
type Connectivity int

const (
	// Conn4 joins orthogonal neighbors only.
	Conn4 Connectivity = 4
	// Conn8 joins orthogonal and diagonal neighbors.
	Conn8 Connectivity = 8
)

// ParseConnectivity validates a numeric connectivity mode.
func ParseConnectivity(n int) (Connectivity, error) {
	switch n {
	case 4:
		return Conn4, nil
	case 8:
		return Conn8, nil
	}
	return 0, fmt.Errorf("%w: got %d", ErrBadConnectivity, n)
}

func (c Connectivity) String() string {
	return fmt.Sprintf("%d-connected", int(c))
}

// Component summarizes one labeled foreground region.
type Component struct {
	Label  int32
	Area   int
	Bounds image.Rectangle
}

// Labeling holds the per-pixel component labels of a mask. Labels[i] is 0
// for background; foreground labels start at 1 and Components[l-1]
// describes label l. Components are numbered in row-major order of their
// first pixel.
type Labeling struct {
	Width      int
	Height     int
	Labels     []int32
	Components []Component
}

// unionFind is a forest over provisional labels with path halving. Unions
// keep the smaller root so resolved roots stay scan-order stable.
type unionFind struct {
	parent []int32
}

func newUnionFind(n int32) *unionFind {
	parent := make([]int32, n+1)
	for i := range parent {
		parent[i] = int32(i)
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int32) int32 {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int32) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}

// Label computes the connected components of b under the given
// connectivity. Output labels are deterministic: components are numbered
// by the raster-scan position of their first pixel.
func Label(b *raster.Bitmap, conn Connectivity) *Labeling {
	run := bandPass(b, conn, 0, b.Height)
	return compactLabels(b.Width, b.Height, run.labels, func(l int32) int32 { return l })
}

// bandRun is the outcome of a provisional labeling pass over rows
// [y0, y0+rows): pixel labels resolved to their in-band union-find roots,
// numbered locally from 1.
type bandRun struct {
	y0     int
	labels []int32
	count  int32
}

// bandPass runs the provisional labeling scan over rows [y0, y1) of b,
// considering only neighbors inside that row range. Returned labels are
// fully resolved within the band.
func bandPass(b *raster.Bitmap, conn Connectivity, y0, y1 int) bandRun {
	w := b.Width
	rows := y1 - y0
	labels := make([]int32, w*rows)

	// Neighbors already visited by the scan: west, then the previous row.
	prev := []image.Point{{X: -1, Y: 0}, {X: 0, Y: -1}}
	if conn == Conn8 {
		prev = []image.Point{{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1}}
	}

	uf := &unionFind{parent: []int32{0}}
	next := int32(1)

	for ly := 0; ly < rows; ly++ {
		srcOff := (y0 + ly) * w
		for x := 0; x < w; x++ {
			if b.Pix[srcOff+x] == 0 {
				continue
			}
			assigned := int32(0)
			for _, d := range prev {
				nx, ny := x+d.X, ly+d.Y
				if nx < 0 || nx >= w || ny < 0 {
					continue
				}
				nl := labels[ny*w+nx]
				if nl == 0 {
					continue
				}
				if assigned == 0 {
					assigned = nl
				} else if assigned != nl {
					uf.union(assigned, nl)
				}
			}
			if assigned == 0 {
				assigned = next
				uf.parent = append(uf.parent, next)
				next++
			}
			labels[ly*w+x] = assigned
		}
	}

	for i, l := range labels {
		if l != 0 {
			labels[i] = uf.find(l)
		}
	}
	return bandRun{y0: y0, labels: labels, count: next - 1}
}

// compactLabels renumbers resolved labels into canonical scan-order form
// and builds the component table. find maps a provisional label to its
// equivalence-class root; labels is rewritten in place.
func compactLabels(width, height int, labels []int32, find func(int32) int32) *Labeling {
	remap := make(map[int32]int32)
	var comps []Component

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			l := labels[row+x]
			if l == 0 {
				continue
			}
			root := find(l)
			final, ok := remap[root]
			if !ok {
				final = int32(len(comps) + 1)
				remap[root] = final
				comps = append(comps, Component{
					Label:  final,
					Bounds: image.Rect(x, y, x+1, y+1),
				})
			}
			labels[row+x] = final

			c := &comps[final-1]
			c.Area++
			c.Bounds = c.Bounds.Union(image.Rect(x, y, x+1, y+1))
		}
	}

	return &Labeling{Width: width, Height: height, Labels: labels, Components: comps}
}
