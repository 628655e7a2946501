// Package morph implements binary morphological operators for bridging
// small gaps in a road mask before component analysis.
//
// The operators work on raster.Bitmap values and always allocate a fresh
// output of the same dimensions. Reads beyond the bitmap are background.
// Close runs its dilation and erosion phases on a working buffer padded by
// iterations·radius pixels, so foreground that grows past the border
// during dilation still participates in the erosion phase; shapes touching
// the border therefore survive closing instead of being eaten from the
// outside. Closing is idempotent: applying it a second time with the same
// element and iteration count changes nothing.
//
// Pixel rows are processed in parallel blocks via bild's parallel helper.
package morph
