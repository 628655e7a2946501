package raster

import "testing"

func TestBitmapAt_OutsideReadsBackground(t *testing.T) {
	b := NewBitmap(3, 2)
	b.Set(2, 1, true)

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 1, true},
		{0, 0, false},
		{-1, 0, false},
		{3, 0, false},
		{0, -1, false},
		{0, 2, false},
	}

	for _, tt := range tests {
		if got := b.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d, %d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBitmapSet_OutsideIgnored(t *testing.T) {
	b := NewBitmap(2, 2)
	b.Set(-1, 0, true)
	b.Set(0, 5, true)
	b.Set(2, 0, true)

	if got := b.Count(); got != 0 {
		t.Errorf("Count after out-of-bounds sets: got %d, want 0", got)
	}
}

func TestBitmapClone_Independent(t *testing.T) {
	b := NewBitmap(2, 2)
	b.Set(0, 0, true)

	c := b.Clone()
	c.Set(1, 1, true)

	if b.At(1, 1) {
		t.Error("mutating clone changed original")
	}
	if !c.At(0, 0) {
		t.Error("clone missing original pixel")
	}
	if got := b.Count(); got != 1 {
		t.Errorf("original Count: got %d, want 1", got)
	}
}

func TestBitmapEqual(t *testing.T) {
	a := NewBitmap(2, 3)
	b := NewBitmap(2, 3)

	if !a.Equal(b) {
		t.Error("empty bitmaps of equal size should be equal")
	}

	b.Set(1, 2, true)
	if a.Equal(b) {
		t.Error("bitmaps with different pixels should differ")
	}

	if a.Equal(NewBitmap(3, 2)) {
		t.Error("bitmaps with different dimensions should differ")
	}
}
