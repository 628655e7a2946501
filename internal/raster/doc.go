// Package raster provides the binary mask representation consumed by the
// perimeter-extraction pipeline, together with its georeferencing transform
// and the file boundary that produces both.
//
// A mask enters the system as an ordinary grayscale (or probability) image
// in PNG, JPEG, GIF, or TIFF form. The loader thresholds it into a Bitmap
// whose pixels are exactly 0 or 1, and pairs it with the 6-coefficient
// affine transform read from the ESRI world-file sidecar next to the image.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X: column, increases rightward
//   - Y: row, increases downward
//
// The affine transform maps pixel (column, row) to geographic (x, y):
//
//	x = A·col + B·row + C
//	y = D·col + E·row + F
//
// World files store pixel-center coordinates for the upper-left pixel, so
// integer pixel coordinates map to pixel centers.
//
// # Ownership
//
// A Mask is read-only input: pipeline stages never mutate it in place, and
// every operation that changes pixels allocates a fresh Bitmap. Masks and
// Bitmaps may therefore be shared freely across concurrent pipeline runs.
//
// # Tiling
//
// For rasters too large to process comfortably in one piece, SplitTiles
// partitions a Bitmap into row-major tiles with an optional halo of
// neighboring pixels around each core region; Stitch reassembles cores into
// a full-size Bitmap. Halo pixels outside the raster are background, the
// same zero-padding rule the morphology stage applies at raster borders.
package raster
