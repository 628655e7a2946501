// Package render produces diagnostic overlay images: labeled components
// in distinct colors, the selected component highlighted, and the raw and
// simplified perimeters drawn on top.
package render
