package render

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/road-perimeter/internal/contour"
	"github.com/ironsheep/road-perimeter/internal/raster"
	"github.com/ironsheep/road-perimeter/internal/region"
)

// twoComponents labels an 8x6 mask holding a 3x3 block (label 1) and an
// isolated pixel at (6,4) (label 2).
func twoComponents(t *testing.T) *region.Labeling {
	t.Helper()
	b := raster.NewBitmap(8, 6)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			b.Set(x, y, true)
		}
	}
	b.Set(6, 4, true)
	return region.Label(b, region.Conn8)
}

func TestOverlay_PaintsComponents(t *testing.T) {
	lab := twoComponents(t)

	img := Overlay(lab, 1, nil, nil, Options{})
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("native-size overlay: got %T, want *image.RGBA", img)
	}

	if got := rgba.RGBAAt(0, 0); got != backgroundColor {
		t.Errorf("background pixel: got %v, want %v", got, backgroundColor)
	}
	sel := rgba.RGBAAt(2, 2)
	other := rgba.RGBAAt(6, 4)
	if sel == backgroundColor || other == backgroundColor {
		t.Fatal("component pixels must not use the background color")
	}
	if sel == other {
		t.Errorf("selected and unselected components share color %v", sel)
	}
}

func TestOverlay_DistinctComponentColors(t *testing.T) {
	lab := twoComponents(t)

	img := Overlay(lab, 0, nil, nil, Options{}).(*image.RGBA)

	if a, b := img.RGBAAt(2, 2), img.RGBAAt(6, 4); a == b {
		t.Errorf("labels 1 and 2 share color %v", a)
	}
}

func TestOverlay_DrawsPerimeters(t *testing.T) {
	lab := twoComponents(t)
	ring := contour.Ring{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}}

	img := Overlay(lab, 1, nil, ring, Options{}).(*image.RGBA)

	// Midpoints of all four edges, including the closing edge.
	for _, pt := range []image.Point{{2, 1}, {3, 2}, {2, 3}, {1, 2}} {
		if got := img.RGBAAt(pt.X, pt.Y); got != simplifiedColor {
			t.Errorf("ring pixel (%d,%d): got %v, want %v", pt.X, pt.Y, got, simplifiedColor)
		}
	}
}

func TestOverlay_RawUnderSimplified(t *testing.T) {
	lab := twoComponents(t)
	raw := contour.Ring{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}}
	simplified := contour.Ring{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}}

	img := Overlay(lab, 1, raw, simplified, Options{}).(*image.RGBA)

	if got := img.RGBAAt(2, 1); got != simplifiedColor {
		t.Errorf("shared edge pixel: got %v, want simplified color %v", got, simplifiedColor)
	}
}

func TestOverlay_Downscale(t *testing.T) {
	lab := twoComponents(t)

	img := Overlay(lab, 1, nil, nil, Options{Width: 4})

	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 4 || h != 3 {
		t.Errorf("downscaled bounds: got %dx%d, want 4x3", w, h)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	lab := twoComponents(t)
	img := Overlay(lab, 1, nil, nil, Options{})

	path := filepath.Join(t.TempDir(), "overlay.png")
	if err := Save(path, img); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := imgio.Open(path)
	if err != nil {
		t.Fatalf("reopen overlay: %v", err)
	}
	if !loaded.Bounds().Eq(img.Bounds()) {
		t.Errorf("bounds after round trip: got %v, want %v", loaded.Bounds(), img.Bounds())
	}
}
