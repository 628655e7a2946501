// Package region labels connected foreground components of a binary mask
// and selects the primary component for perimeter extraction.
//
// # Labeling
//
// Label runs a classic two-pass connected-component pass: a raster scan
// assigns provisional labels while recording equivalences between touching
// runs in a union-find forest, then a second scan resolves roots and
// renumbers components 1, 2, 3… in order of each component's first pixel
// in row-major scan order. Identical inputs therefore always produce
// identical label assignments, regardless of how equivalences happened to
// be discovered.
//
// Connectivity is selectable: Conn4 joins orthogonal neighbors only,
// Conn8 also joins diagonals.
//
// # Banded labeling
//
// LabelTiled produces bit-identical output to Label while running the
// first pass concurrently over horizontal row bands. Bands get disjoint
// provisional label ranges, seam rows contribute label equivalences
// exactly like in-band neighbors, and the shared renumbering pass
// restores the canonical scan-order labels.
package region
