package raster

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestThreshold_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	for x, v := range []uint8{0, 127, 128, 255} {
		img.SetGray(x, 0, color.Gray{Y: v})
	}

	b := Threshold(img, 128)

	want := []uint8{0, 0, 1, 1}
	for x, w := range want {
		if got := b.Pix[x]; got != w {
			t.Errorf("pixel %d: got %d, want %d", x, got, w)
		}
	}
}

func TestThreshold_Color(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})
	img.Set(1, 0, color.RGBA{255, 0, 0, 255})
	img.Set(2, 0, color.RGBA{0, 0, 0, 255})

	b := Threshold(img, 128)

	if !b.At(0, 0) {
		t.Error("white pixel should be foreground at level 128")
	}
	if b.At(1, 0) {
		t.Error("pure red (luminance 76) should be background at level 128")
	}
	if b.At(2, 0) {
		t.Error("black pixel should be background")
	}
}

func TestThreshold_GraySubImage(t *testing.T) {
	base := image.NewGray(image.Rect(0, 0, 6, 6))
	base.SetGray(3, 3, color.Gray{Y: 200})

	sub := base.SubImage(image.Rect(2, 2, 5, 5)).(*image.Gray)
	b := Threshold(sub, 128)

	if b.Width != 3 || b.Height != 3 {
		t.Fatalf("dimensions: got %dx%d, want 3x3", b.Width, b.Height)
	}
	if !b.At(1, 1) {
		t.Error("foreground pixel lost in sub-image threshold")
	}
	if got := b.Count(); got != 1 {
		t.Errorf("Count: got %d, want 1", got)
	}
}

func writeMaskPNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func TestLoadMask(t *testing.T) {
	dir := t.TempDir()

	img := image.NewGray(image.Rect(0, 0, 4, 3))
	img.SetGray(1, 1, color.Gray{Y: 255})
	img.SetGray(2, 1, color.Gray{Y: 200})
	path := writeMaskPNG(t, dir, "mask.png", img)

	world := "0.5\n0\n0\n-0.5\n10\n20\n"
	if err := os.WriteFile(filepath.Join(dir, "mask.pgw"), []byte(world), 0o644); err != nil {
		t.Fatalf("write world file: %v", err)
	}

	mask, err := LoadMask(path, 128, "EPSG:32633")
	if err != nil {
		t.Fatalf("LoadMask failed: %v", err)
	}

	if mask.Grid.Width != 4 || mask.Grid.Height != 3 {
		t.Errorf("dimensions: got %dx%d, want 4x3", mask.Grid.Width, mask.Grid.Height)
	}
	if got := mask.Grid.Count(); got != 2 {
		t.Errorf("foreground count: got %d, want 2", got)
	}
	if !mask.Grid.At(1, 1) || !mask.Grid.At(2, 1) {
		t.Error("expected foreground at (1,1) and (2,1)")
	}

	wantTr := Affine{A: 0.5, E: -0.5, C: 10, F: 20}
	if mask.Transform != wantTr {
		t.Errorf("transform: got %+v, want %+v", mask.Transform, wantTr)
	}
	if mask.CRS != "EPSG:32633" {
		t.Errorf("CRS: got %s, want EPSG:32633", mask.CRS)
	}
	if mask.Source != path {
		t.Errorf("Source: got %s, want %s", mask.Source, path)
	}
}

func TestLoadMask_MissingWorldFile(t *testing.T) {
	dir := t.TempDir()
	path := writeMaskPNG(t, dir, "mask.png", image.NewGray(image.Rect(0, 0, 2, 2)))

	_, err := LoadMask(path, 128, "")
	if !errors.Is(err, ErrNoWorldFile) {
		t.Errorf("got %v, want ErrNoWorldFile", err)
	}
}

func TestLoadMask_SingularWorldFile(t *testing.T) {
	dir := t.TempDir()
	path := writeMaskPNG(t, dir, "mask.png", image.NewGray(image.Rect(0, 0, 2, 2)))
	if err := os.WriteFile(filepath.Join(dir, "mask.pgw"), []byte("0\n0\n0\n0\n0\n0\n"), 0o644); err != nil {
		t.Fatalf("write world file: %v", err)
	}

	_, err := LoadMask(path, 128, "")
	if !errors.Is(err, ErrSingularTransform) {
		t.Errorf("got %v, want ErrSingularTransform", err)
	}
}

func TestLoadMask_NotAnImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mask.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := LoadMask(path, 128, ""); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestCache_SharesDecodedGrid(t *testing.T) {
	dir := t.TempDir()
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(1, 1, color.Gray{Y: 255})
	path := writeMaskPNG(t, dir, "mask.png", img)
	if err := os.WriteFile(filepath.Join(dir, "mask.pgw"), []byte("1\n0\n0\n1\n0\n0\n"), 0o644); err != nil {
		t.Fatalf("write world file: %v", err)
	}

	cache := NewCache()

	m1, err := cache.Load(path, 128, "EPSG:4326")
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	m2, err := cache.Load(path, 128, "EPSG:3857")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	if m1.Grid != m2.Grid {
		t.Error("cached loads should share the decoded grid")
	}
	if m2.CRS != "EPSG:3857" {
		t.Errorf("CRS: got %s, want EPSG:3857", m2.CRS)
	}

	m3, err := cache.Load(path, 10, "EPSG:4326")
	if err != nil {
		t.Fatalf("Load at level 10 failed: %v", err)
	}
	if m3.Grid == m1.Grid {
		t.Error("different threshold levels must not share an entry")
	}

	cache.Evict(path, 128)
	m4, err := cache.Load(path, 128, "EPSG:4326")
	if err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	if m4.Grid == m1.Grid {
		t.Error("evicted entry should be decoded again")
	}
}
