package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/road-perimeter/internal/contour"
	"github.com/ironsheep/road-perimeter/internal/raster"
)

func TestGeoreference_IdentityKeepsCoordinates(t *testing.T) {
	ring := contour.Ring{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}

	got := Georeference(ring, raster.Identity())

	want := orb.Ring{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}}
	require.Equal(t, want, got)
	require.InDelta(t, 4.0, planar.Area(got), 1e-9)
}

func TestGeoreference_NorthUpFlipsWinding(t *testing.T) {
	// 2-unit pixels, negative y scale, origin offset: the mirror in y
	// reverses orientation, so the ring must come back counter-clockwise.
	tr := raster.Affine{A: 2, C: 100, E: -2, F: 500}
	ring := contour.Ring{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}

	got := Georeference(ring, tr)

	require.Len(t, got, 5)
	require.Equal(t, got[0], got[len(got)-1], "ring must stay closed")
	require.Equal(t, orb.Point{108, 492}, got[0], "reversal must keep the start vertex")
	require.InDelta(t, 16.0, planar.Area(got), 1e-9)
}

func TestGeoreference_AppliesSkewTerms(t *testing.T) {
	tr := raster.Affine{A: 1, B: 0.5, C: 10, D: 0.25, E: -1, F: 20}

	got := Georeference(contour.Ring{{X: 2, Y: 4}}, tr)

	// x = 1*2 + 0.5*4 + 10, y = 0.25*2 - 1*4 + 20.
	require.Equal(t, orb.Point{14, 16.5}, got[0])
}

func TestGeoreference_EmptyRing(t *testing.T) {
	got := Georeference(nil, raster.Identity())
	require.Empty(t, got)
}

func TestValidate_SimpleRing(t *testing.T) {
	ring := orb.Ring{{0, 0}, {4, 0}, {4, 3}, {0, 3}, {0, 0}}
	require.NoError(t, Validate(ring))
}

func TestValidate_Bowtie(t *testing.T) {
	ring := orb.Ring{{0, 0}, {4, 4}, {4, 0}, {0, 4}, {0, 0}}

	err := Validate(ring)

	require.ErrorIs(t, err, ErrNotSimple)
}

func TestValidate_RepeatedVertex(t *testing.T) {
	ring := orb.Ring{{0, 0}, {2, 0}, {1, 1}, {2, 2}, {0, 2}, {1, 1}, {0, 0}}

	err := Validate(ring)

	require.ErrorIs(t, err, ErrNotSimple)
}

func TestValidate_VertexOnNonAdjacentEdge(t *testing.T) {
	// The last vertex sits on the first edge without crossing it.
	ring := orb.Ring{{0, 0}, {2, 0}, {2, 2}, {1, 0}, {0, 0}}

	err := Validate(ring)

	require.ErrorIs(t, err, ErrNotSimple)
}

func TestValidate_NotClosed(t *testing.T) {
	ring := orb.Ring{{0, 0}, {1, 0}, {1, 1}}

	err := Validate(ring)

	require.ErrorIs(t, err, ErrNotSimple)
}

func TestValidate_TooFewVertices(t *testing.T) {
	ring := orb.Ring{{0, 0}, {1, 0}, {0, 0}}

	err := Validate(ring)

	require.ErrorIs(t, err, ErrNotSimple)
}
