package raster

import (
	"errors"
	"testing"
)

// patternBitmap fills a bitmap with a deterministic non-uniform pattern so
// stitching errors cannot cancel out.
func patternBitmap(w, h int) *Bitmap {
	b := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x*7+y*13)%3 == 0 {
				b.Pix[y*w+x] = 1
			}
		}
	}
	return b
}

func TestSplitTiles_Geometry(t *testing.T) {
	b := patternBitmap(10, 7)

	tiles, err := SplitTiles(b, 4, 3, 0)
	if err != nil {
		t.Fatalf("SplitTiles failed: %v", err)
	}
	if len(tiles) != 9 {
		t.Fatalf("tile count: got %d, want 9", len(tiles))
	}

	// Row-major order; the last column and row carry the remainders.
	last := tiles[8]
	if last.X != 8 || last.Y != 6 || last.CoreW != 2 || last.CoreH != 1 {
		t.Errorf("last tile: got x=%d y=%d core %dx%d, want x=8 y=6 core 2x1",
			last.X, last.Y, last.CoreW, last.CoreH)
	}

	covered := 0
	for _, tile := range tiles {
		covered += tile.CoreW * tile.CoreH
	}
	if covered != 70 {
		t.Errorf("core coverage: got %d pixels, want 70", covered)
	}
}

func TestSplitTiles_HaloPadding(t *testing.T) {
	b := NewBitmap(4, 4)
	for i := range b.Pix {
		b.Pix[i] = 1
	}

	tiles, err := SplitTiles(b, 2, 2, 1)
	if err != nil {
		t.Fatalf("SplitTiles failed: %v", err)
	}
	if len(tiles) != 4 {
		t.Fatalf("tile count: got %d, want 4", len(tiles))
	}

	tl := tiles[0]
	if tl.Grid.Width != 4 || tl.Grid.Height != 4 {
		t.Fatalf("halo grid: got %dx%d, want 4x4", tl.Grid.Width, tl.Grid.Height)
	}
	if tl.Grid.At(0, 0) {
		t.Error("halo outside the raster should read background")
	}
	if !tl.Grid.At(3, 3) {
		t.Error("halo inside the raster should carry source pixels")
	}
	if !tl.Grid.At(1, 1) {
		t.Error("core pixel missing from tile grid")
	}
}

func TestStitch_RoundTrip(t *testing.T) {
	b := patternBitmap(13, 9)

	for _, halo := range []int{0, 1, 3} {
		tiles, err := SplitTiles(b, 5, 4, halo)
		if err != nil {
			t.Fatalf("SplitTiles(halo=%d) failed: %v", halo, err)
		}
		got := Stitch(tiles, b.Width, b.Height)
		if !got.Equal(b) {
			t.Errorf("halo %d: stitched bitmap differs from source", halo)
		}
	}
}

func TestSplitTiles_SingleTileCoversAll(t *testing.T) {
	b := patternBitmap(6, 5)

	tiles, err := SplitTiles(b, 100, 100, 2)
	if err != nil {
		t.Fatalf("SplitTiles failed: %v", err)
	}
	if len(tiles) != 1 {
		t.Fatalf("tile count: got %d, want 1", len(tiles))
	}

	got := Stitch(tiles, 6, 5)
	if !got.Equal(b) {
		t.Error("single-tile stitch differs from source")
	}
}

func TestSplitTiles_BadGeometry(t *testing.T) {
	b := NewBitmap(4, 4)

	tests := []struct {
		name         string
		tw, th, halo int
	}{
		{"zero width", 0, 2, 0},
		{"zero height", 2, 0, 0},
		{"negative halo", 2, 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SplitTiles(b, tt.tw, tt.th, tt.halo); !errors.Is(err, ErrBadTileGeometry) {
				t.Errorf("got %v, want ErrBadTileGeometry", err)
			}
		})
	}
}
