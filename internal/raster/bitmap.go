package raster

// Bitmap is a binary raster of Width × Height pixels stored row-major.
//
// Pix holds exactly one byte per pixel with value 0 (background) or 1
// (foreground); index = y*Width + x. The flat layout keeps neighborhood
// scans cache-friendly and makes row ranges trivial to hand to parallel
// workers.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBitmap returns an all-background bitmap of the given dimensions.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Index returns the flat Pix index for (x, y). No bounds checking.
func (b *Bitmap) Index(x, y int) int {
	return y*b.Width + x
}

// In reports whether (x, y) lies inside the bitmap.
func (b *Bitmap) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// At reports whether the pixel at (x, y) is foreground. Coordinates outside
// the bitmap read as background, which implements the zero-padding border
// policy shared by all pipeline stages.
func (b *Bitmap) At(x, y int) bool {
	if !b.In(x, y) {
		return false
	}
	return b.Pix[y*b.Width+x] != 0
}

// Set assigns the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (b *Bitmap) Set(x, y int, foreground bool) {
	if !b.In(x, y) {
		return
	}
	if foreground {
		b.Pix[y*b.Width+x] = 1
	} else {
		b.Pix[y*b.Width+x] = 0
	}
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	out := &Bitmap{
		Width:  b.Width,
		Height: b.Height,
		Pix:    make([]uint8, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

// Equal reports whether two bitmaps have identical dimensions and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.Width != o.Width || b.Height != o.Height {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Count returns the number of foreground pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
