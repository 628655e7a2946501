// Package pipeline sequences the perimeter extraction stages: threshold,
// morphological closing, component labeling, primary selection, boundary
// tracing, simplification, and georeferencing.
//
// Failure is atomic. A stage error aborts the run and is wrapped with one
// of the four category sentinels (ErrBadInput, ErrInvalidConfig,
// ErrNoComponent, ErrDegenerateGeometry) so callers classify outcomes
// with errors.Is; no partial or best-effort polygon is ever returned.
// The leaf error stays in the chain for diagnostics.
//
// The pipeline does not own a logger. Callers pass a zerolog.Logger and
// receive stage-level events (durations, component and vertex counts)
// tagged with the run id.
package pipeline
