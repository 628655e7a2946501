package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/rs/zerolog"

	"github.com/ironsheep/road-perimeter/internal/contour"
	"github.com/ironsheep/road-perimeter/internal/geo"
	"github.com/ironsheep/road-perimeter/internal/morph"
	"github.com/ironsheep/road-perimeter/internal/raster"
	"github.com/ironsheep/road-perimeter/internal/region"
)

// Result is a successful extraction: the georeferenced perimeter polygon
// plus the run metadata recorded on the output feature.
type Result struct {
	RunID       string      `json:"run_id"`
	Polygon     orb.Polygon `json:"polygon"`
	CRS         string      `json:"crs"`
	Source      string      `json:"source"`
	PixelArea   int         `json:"pixel_area"`
	GeoArea     float64     `json:"area"`
	Epsilon     float64     `json:"epsilon"`
	RawVertices int         `json:"raw_vertices"`
	Vertices    int         `json:"vertices"`
	Components  int         `json:"components"`
}

// Metadata collects the Result fields carried on the GeoJSON feature.
func (r *Result) Metadata() geo.Metadata {
	return geo.Metadata{
		Source:      r.Source,
		CRS:         r.CRS,
		RunID:       r.RunID,
		PixelArea:   r.PixelArea,
		GeoArea:     r.GeoArea,
		Epsilon:     r.Epsilon,
		RawVertices: r.RawVertices,
		Vertices:    r.Vertices,
		Components:  r.Components,
	}
}

// Debug carries the intermediate artifacts the overlay renderer consumes.
type Debug struct {
	Labeling   *region.Labeling
	Selected   region.Component
	Raw        contour.Ring
	Simplified contour.Ring
}

// Run loads the mask at path, derives its world-file transform, and
// extracts the perimeter polygon.
func Run(path string, p Params, log zerolog.Logger) (*Result, error) {
	res, _, err := RunDebug(path, p, log)
	return res, err
}

// RunDebug is Run, additionally returning intermediate artifacts.
func RunDebug(path string, p Params, log zerolog.Logger) (*Result, *Debug, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	mask, err := raster.LoadMask(path, p.Threshold, p.CRS)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBadInput, err)
	}
	return ExtractDebug(mask, p, log)
}

// Extract runs the extraction stages over an already-loaded mask. The
// mask grid is never modified. On any stage failure the error wraps the
// matching category sentinel and no Result is returned.
func Extract(mask *raster.Mask, p Params, log zerolog.Logger) (*Result, error) {
	res, _, err := ExtractDebug(mask, p, log)
	return res, err
}

// ExtractDebug is Extract, additionally returning intermediate artifacts.
func ExtractDebug(mask *raster.Mask, p Params, log zerolog.Logger) (*Result, *Debug, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if mask == nil || mask.Grid == nil {
		return nil, nil, fmt.Errorf("%w: nil mask", ErrBadInput)
	}

	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Str("source", mask.Source).Logger()

	closed := mask.Grid
	if p.Iterations > 0 {
		shape, _ := morph.ParseShape(p.Element)
		se, err := morph.NewElement(shape, p.Radius)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		start := time.Now()
		closed, err = closeGrid(mask.Grid, se, p.Iterations, p.TileSize)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().
			Str("element", shape.String()).
			Int("radius", p.Radius).
			Int("iterations", p.Iterations).
			Dur("elapsed", time.Since(start)).
			Msg("closed mask")
	}

	conn, _ := region.ParseConnectivity(p.Connectivity)
	start := time.Now()
	lab, err := labelGrid(closed, conn, p.TileSize)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().
		Int("components", len(lab.Components)).
		Dur("elapsed", time.Since(start)).
		Msg("labeled components")

	primary, err := region.SelectPrimary(lab, p.MinArea)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNoComponent, err)
	}
	log.Debug().
		Int32("label", primary.Label).
		Int("pixel_area", primary.Area).
		Msg("selected primary component")

	ring, err := contour.Trace(region.Isolate(lab, primary.Label))
	if err != nil {
		return nil, nil, classify(err)
	}
	simplified, err := contour.Simplify(ring, p.Epsilon)
	if err != nil {
		return nil, nil, classify(err)
	}

	georing := geo.Georeference(simplified, mask.Transform)
	if err := geo.Validate(georing); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDegenerateGeometry, err)
	}

	crs := mask.CRS
	if crs == "" {
		crs = p.CRS
	}
	res := &Result{
		RunID:       runID,
		Polygon:     orb.Polygon{georing},
		CRS:         crs,
		Source:      mask.Source,
		PixelArea:   primary.Area,
		GeoArea:     planar.Area(georing),
		Epsilon:     p.Epsilon,
		RawVertices: len(ring),
		Vertices:    len(simplified),
		Components:  len(lab.Components),
	}
	dbg := &Debug{
		Labeling:   lab,
		Selected:   primary,
		Raw:        ring,
		Simplified: simplified,
	}
	log.Info().
		Int("raw_vertices", res.RawVertices).
		Int("vertices", res.Vertices).
		Int("pixel_area", res.PixelArea).
		Float64("area", res.GeoArea).
		Msg("extracted perimeter")
	return res, dbg, nil
}

// closeGrid applies morphological closing, tiled when tile > 0. A halo of
// twice the closing reach keeps tile seams exact: dilation can push
// foreground up to iterations*radius outward, and the erosions that
// follow read another iterations*radius beyond that.
func closeGrid(b *raster.Bitmap, se morph.StructElement, iterations, tile int) (*raster.Bitmap, error) {
	if tile <= 0 {
		return morph.Close(b, se, iterations), nil
	}
	halo := 2 * iterations * se.Radius
	tiles, err := raster.SplitTiles(b, tile, tile, halo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for i := range tiles {
		tiles[i].Grid = morph.Close(tiles[i].Grid, se, iterations)
	}
	return raster.Stitch(tiles, b.Width, b.Height), nil
}

// labelGrid labels connected components, in row bands when tile > 0.
func labelGrid(b *raster.Bitmap, conn region.Connectivity, tile int) (*region.Labeling, error) {
	if tile <= 0 {
		return region.Label(b, conn), nil
	}
	lab, err := region.LabelTiled(b, conn, tile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return lab, nil
}

// classify maps contour-stage sentinels to failure categories.
func classify(err error) error {
	switch {
	case errors.Is(err, contour.ErrNoForeground):
		return fmt.Errorf("%w: %w", ErrNoComponent, err)
	case errors.Is(err, contour.ErrBadTolerance):
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	default:
		return fmt.Errorf("%w: %w", ErrDegenerateGeometry, err)
	}
}
