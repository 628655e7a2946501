package raster

import (
	"errors"
	"fmt"
)

// ErrBadTileGeometry indicates a tile request with nonpositive core
// dimensions or a negative halo.
var ErrBadTileGeometry = errors.New("raster: invalid tile geometry")

// Tile is a rectangular window of a source bitmap: a core region that the
// tile owns plus a halo of surrounding context pixels.
//
// Grid always measures (CoreW+2·Halo)×(CoreH+2·Halo), with the core at
// offset (Halo, Halo). Halo pixels are copied from the source where the
// source extends that far and are background elsewhere, so neighborhood
// operations see the same zero padding at mosaic edges as whole-raster
// processing does.
type Tile struct {
	Grid  *Bitmap
	X, Y  int // core origin in source coordinates
	CoreW int
	CoreH int
	Halo  int
}

// SplitTiles partitions b into a row-major grid of tiles whose cores
// measure at most tileW×tileH pixels. Every source pixel belongs to exactly
// one core; tiles on the right and bottom edges get smaller cores when the
// dimensions do not divide evenly.
//
// The halo must cover the reach of whatever neighborhood operation the
// tiles feed, or results along core seams will diverge from whole-raster
// processing.
func SplitTiles(b *Bitmap, tileW, tileH, halo int) ([]Tile, error) {
	if tileW < 1 || tileH < 1 || halo < 0 {
		return nil, fmt.Errorf("%w: core %dx%d halo %d", ErrBadTileGeometry, tileW, tileH, halo)
	}

	var tiles []Tile
	for y := 0; y < b.Height; y += tileH {
		coreH := tileH
		if y+coreH > b.Height {
			coreH = b.Height - y
		}
		for x := 0; x < b.Width; x += tileW {
			coreW := tileW
			if x+coreW > b.Width {
				coreW = b.Width - x
			}
			tiles = append(tiles, cutTile(b, x, y, coreW, coreH, halo))
		}
	}
	return tiles, nil
}

func cutTile(b *Bitmap, x, y, coreW, coreH, halo int) Tile {
	grid := NewBitmap(coreW+2*halo, coreH+2*halo)
	for ty := 0; ty < grid.Height; ty++ {
		sy := y - halo + ty
		if sy < 0 || sy >= b.Height {
			continue
		}
		for tx := 0; tx < grid.Width; tx++ {
			sx := x - halo + tx
			if sx < 0 || sx >= b.Width {
				continue
			}
			grid.Pix[ty*grid.Width+tx] = b.Pix[sy*b.Width+sx]
		}
	}
	return Tile{Grid: grid, X: x, Y: y, CoreW: coreW, CoreH: coreH, Halo: halo}
}

// Stitch reassembles tile cores into a single bitmap of the given
// dimensions, discarding halos. It is the inverse of SplitTiles for any
// halo value.
func Stitch(tiles []Tile, width, height int) *Bitmap {
	out := NewBitmap(width, height)
	for _, t := range tiles {
		for cy := 0; cy < t.CoreH; cy++ {
			sy := t.Y + cy
			if sy < 0 || sy >= height {
				continue
			}
			srcOff := (cy + t.Halo) * t.Grid.Width
			dstOff := sy * width
			for cx := 0; cx < t.CoreW; cx++ {
				sx := t.X + cx
				if sx < 0 || sx >= width {
					continue
				}
				out.Pix[dstOff+sx] = t.Grid.Pix[srcOff+cx+t.Halo]
			}
		}
	}
	return out
}
