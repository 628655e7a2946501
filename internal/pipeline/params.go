package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ironsheep/road-perimeter/internal/morph"
	"github.com/ironsheep/road-perimeter/internal/region"
)

// Params is the operator configuration surface. Fields may be loaded from
// a JSON parameter file and overridden by command-line flags.
type Params struct {
	// Threshold is the grayscale level at or above which a pixel counts
	// as road foreground.
	Threshold uint8 `json:"threshold"`
	// Element names the structuring-element shape: square, disk or cross.
	Element string `json:"element"`
	// Radius is the structuring-element radius in pixels.
	Radius int `json:"radius"`
	// Iterations is the closing strength N: N dilations then N erosions.
	// Zero skips closing entirely.
	Iterations int `json:"iterations"`
	// Connectivity is the component adjacency rule, 4 or 8.
	Connectivity int `json:"connectivity"`
	// MinArea drops components smaller than this many pixels. Zero keeps
	// everything.
	MinArea int `json:"min_area"`
	// Epsilon is the simplification tolerance in pixel units.
	Epsilon float64 `json:"epsilon"`
	// CRS is the coordinate-reference identifier carried into the output;
	// it is never interpreted.
	CRS string `json:"crs"`
	// TileSize switches closing and labeling to tiled execution with
	// square tiles of this side length. Zero processes the whole raster
	// at once.
	TileSize int `json:"tile_size"`
}

// Default returns the parameter set used when the operator specifies
// nothing: mid-range threshold, one closing pass with a 3x3 square,
// 8-connectivity, no area filter, 1.5 px tolerance.
func Default() Params {
	return Params{
		Threshold:    128,
		Element:      "square",
		Radius:       1,
		Iterations:   1,
		Connectivity: 8,
		MinArea:      0,
		Epsilon:      1.5,
		CRS:          "EPSG:4326",
		TileSize:     0,
	}
}

// Validate checks every field against its documented range and reports the
// first violation wrapped in ErrInvalidConfig. Values are never clamped.
func (p Params) Validate() error {
	if _, err := morph.ParseShape(p.Element); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if p.Radius < 1 {
		return fmt.Errorf("%w: radius must be >= 1, got %d", ErrInvalidConfig, p.Radius)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be >= 0, got %d", ErrInvalidConfig, p.Iterations)
	}
	if _, err := region.ParseConnectivity(p.Connectivity); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if p.MinArea < 0 {
		return fmt.Errorf("%w: min-area must be >= 0, got %d", ErrInvalidConfig, p.MinArea)
	}
	if p.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon must be > 0, got %g", ErrInvalidConfig, p.Epsilon)
	}
	if p.TileSize < 0 {
		return fmt.Errorf("%w: tile size must be >= 0, got %d", ErrInvalidConfig, p.TileSize)
	}
	return nil
}

// LoadParams reads a JSON parameter file over the defaults, so missing
// keys keep their default values. The result is not validated here; flag
// overrides may still apply before Validate runs.
func LoadParams(path string) (Params, error) {
	p := Default()
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("%w: failed to open parameter file: %w", ErrInvalidConfig, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return p, fmt.Errorf("%w: failed to parse parameter file %s: %w", ErrInvalidConfig, path, err)
	}
	return p, nil
}
