// Package geo turns a pixel-space boundary into a georeferenced polygon
// and writes it as GeoJSON.
//
// Pixel rings arrive implicitly closed and wound clockwise in raster axes;
// Georeference applies the affine transform, closes the ring explicitly,
// and re-normalizes winding to counter-clockwise in geographic axes, which
// is the RFC 7946 exterior-ring convention. The renormalization matters
// because north-up transforms carry a negative y scale that mirrors
// orientation.
package geo
