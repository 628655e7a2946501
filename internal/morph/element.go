package morph

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrBadElement indicates an unknown shape name or a radius below 1.
var ErrBadElement = errors.New("morph: invalid structuring element")

// Shape selects the footprint of a structuring element.
type Shape int

const (
	// Square covers every offset with |dx| ≤ r and |dy| ≤ r.
	Square Shape = iota
	// Disk covers offsets with dx²+dy² ≤ r².
	Disk
	// Cross covers the horizontal and vertical arms through the origin.
	Cross
)

// String returns the lower-case name used in configuration.
func (s Shape) String() string {
	switch s {
	case Square:
		return "square"
	case Disk:
		return "disk"
	case Cross:
		return "cross"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape maps a configuration name to a Shape, ignoring case and
// surrounding whitespace.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "square":
		return Square, nil
	case "disk":
		return Disk, nil
	case "cross":
		return Cross, nil
	}
	return 0, fmt.Errorf("%w: unknown shape %q", ErrBadElement, name)
}

// StructElement is the symmetric pixel neighborhood swept by the
// morphology operators. Build one with NewElement and reuse it across
// runs; it is immutable after construction.
type StructElement struct {
	Shape   Shape
	Radius  int
	offsets []image.Point
}

// NewElement builds the structuring element for a shape and a radius of at
// least 1.
func NewElement(shape Shape, radius int) (StructElement, error) {
	if radius < 1 {
		return StructElement{}, fmt.Errorf("%w: radius %d", ErrBadElement, radius)
	}

	se := StructElement{Shape: shape, Radius: radius}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			switch shape {
			case Square:
				// full window
			case Disk:
				if dx*dx+dy*dy > radius*radius {
					continue
				}
			case Cross:
				if dx != 0 && dy != 0 {
					continue
				}
			default:
				return StructElement{}, fmt.Errorf("%w: unknown shape %d", ErrBadElement, int(shape))
			}
			se.offsets = append(se.offsets, image.Point{X: dx, Y: dy})
		}
	}
	return se, nil
}

// Size returns the number of pixels in the element footprint.
func (se StructElement) Size() int {
	return len(se.offsets)
}
