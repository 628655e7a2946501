package morph

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/road-perimeter/internal/raster"
)

// Dilate returns the dilation of src: a pixel becomes foreground when any
// pixel under the element footprint is foreground. Pixels beyond the
// bitmap read as background. Square elements use a separable two-pass
// implementation; disk and cross sweep their footprint directly.
func Dilate(src *raster.Bitmap, se StructElement) *raster.Bitmap {
	if se.Shape == Square {
		return separable(src, se.Radius, true)
	}
	return gather(src, se, true)
}

// Erode returns the erosion of src: a pixel stays foreground only when
// every pixel under the element footprint is foreground. The background
// border means foreground rows reaching the bitmap edge erode there.
func Erode(src *raster.Bitmap, se StructElement) *raster.Bitmap {
	if se.Shape == Square {
		return separable(src, se.Radius, false)
	}
	return gather(src, se, false)
}

// Close bridges gaps narrower than the element reach: iterations rounds of
// dilation followed by the same number of erosion rounds.
//
// The phases run on a buffer padded by iterations·radius pixels on every
// side, so dilation growth past the border is kept for the erosion phase
// and border-touching foreground is not consumed from outside the frame.
// The result is cropped back to the source dimensions. Zero iterations
// returns a plain copy.
func Close(src *raster.Bitmap, se StructElement, iterations int) *raster.Bitmap {
	if iterations <= 0 {
		return src.Clone()
	}

	margin := iterations * se.Radius
	work := pad(src, margin)
	for i := 0; i < iterations; i++ {
		work = Dilate(work, se)
	}
	for i := 0; i < iterations; i++ {
		work = Erode(work, se)
	}
	return crop(work, margin, src.Width, src.Height)
}

// pad copies src into the center of a bitmap grown by margin background
// pixels on every side.
func pad(src *raster.Bitmap, margin int) *raster.Bitmap {
	out := raster.NewBitmap(src.Width+2*margin, src.Height+2*margin)
	for y := 0; y < src.Height; y++ {
		copy(out.Pix[(y+margin)*out.Width+margin:], src.Pix[y*src.Width:(y+1)*src.Width])
	}
	return out
}

// crop extracts the width×height window at offset (margin, margin).
func crop(src *raster.Bitmap, margin, width, height int) *raster.Bitmap {
	out := raster.NewBitmap(width, height)
	for y := 0; y < height; y++ {
		srcOff := (y + margin) * src.Width
		copy(out.Pix[y*width:(y+1)*width], src.Pix[srcOff+margin:srcOff+margin+width])
	}
	return out
}

// gather evaluates the full element footprint at every pixel: OR semantics
// for dilation, AND for erosion.
func gather(src *raster.Bitmap, se StructElement, dilate bool) *raster.Bitmap {
	out := raster.NewBitmap(src.Width, src.Height)
	parallel.Line(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < src.Width; x++ {
				keep := !dilate
				for _, off := range se.offsets {
					hit := src.At(x+off.X, y+off.Y)
					if dilate && hit {
						keep = true
						break
					}
					if !dilate && !hit {
						keep = false
						break
					}
				}
				if keep {
					out.Pix[y*out.Width+x] = 1
				}
			}
		}
	})
	return out
}

// separable runs a square element as a horizontal pass followed by a
// vertical pass, cutting the per-pixel cost from (2r+1)² to 2(2r+1).
func separable(src *raster.Bitmap, radius int, dilate bool) *raster.Bitmap {
	mid := raster.NewBitmap(src.Width, src.Height)
	parallel.Line(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := src.Pix[y*src.Width : (y+1)*src.Width]
			outRow := mid.Pix[y*mid.Width : (y+1)*mid.Width]
			for x := range outRow {
				outRow[x] = spanValue(row, x, radius, dilate)
			}
		}
	})

	out := raster.NewBitmap(src.Width, src.Height)
	parallel.Line(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < out.Width; x++ {
				out.Pix[y*out.Width+x] = columnValue(mid, x, y, radius, dilate)
			}
		}
	})
	return out
}

// spanValue evaluates the 1-D window of half-width radius centered at x.
// Indices beyond the row read as background.
func spanValue(row []uint8, x, radius int, dilate bool) uint8 {
	for i := x - radius; i <= x+radius; i++ {
		var v uint8
		if i >= 0 && i < len(row) {
			v = row[i]
		}
		if dilate && v != 0 {
			return 1
		}
		if !dilate && v == 0 {
			return 0
		}
	}
	if dilate {
		return 0
	}
	return 1
}

// columnValue is spanValue along the y axis.
func columnValue(b *raster.Bitmap, x, y, radius int, dilate bool) uint8 {
	for i := y - radius; i <= y+radius; i++ {
		var v uint8
		if i >= 0 && i < b.Height {
			v = b.Pix[i*b.Width+x]
		}
		if dilate && v != 0 {
			return 1
		}
		if !dilate && v == 0 {
			return 0
		}
	}
	if dilate {
		return 0
	}
	return 1
}
