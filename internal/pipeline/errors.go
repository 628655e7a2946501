package pipeline

import "errors"

// Failure categories. Every error returned by Run or Extract wraps exactly
// one of these; the CLI maps each category to its own exit code.
var (
	// ErrBadInput covers unreadable mask images, missing or malformed
	// world files, and non-invertible transforms.
	ErrBadInput = errors.New("pipeline: bad input")

	// ErrInvalidConfig covers parameter values outside their documented
	// ranges.
	ErrInvalidConfig = errors.New("pipeline: invalid configuration")

	// ErrNoComponent means no foreground survived thresholding and
	// closing, or every component fell below the minimum-area threshold.
	ErrNoComponent = errors.New("pipeline: no qualifying component")

	// ErrDegenerateGeometry means the traced or simplified boundary does
	// not bound a valid simple polygon.
	ErrDegenerateGeometry = errors.New("pipeline: degenerate geometry")
)
