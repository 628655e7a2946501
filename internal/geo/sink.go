package geo

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Metadata carries the run facts recorded on the output feature.
type Metadata struct {
	Source      string  `json:"source"`
	CRS         string  `json:"crs"`
	RunID       string  `json:"run_id"`
	PixelArea   int     `json:"pixel_area"`
	GeoArea     float64 `json:"area"`
	Epsilon     float64 `json:"epsilon"`
	RawVertices int     `json:"raw_vertices"`
	Vertices    int     `json:"vertices"`
	Components  int     `json:"components"`
}

// WritePerimeter encodes the polygon and its metadata as a GeoJSON
// FeatureCollection on w. The collection holds exactly one Feature whose
// geometry is a single-ring Polygon; the CRS identifier, when present, is
// additionally emitted as a top-level named-CRS member in the legacy 2008
// style many GIS importers still expect.
func WritePerimeter(w io.Writer, ring orb.Ring, meta Metadata) error {
	fc := geojson.NewFeatureCollection()
	if meta.CRS != "" {
		fc.ExtraMembers = map[string]interface{}{
			"crs": map[string]interface{}{
				"type":       "name",
				"properties": map[string]interface{}{"name": meta.CRS},
			},
		}
	}

	f := geojson.NewFeature(orb.Polygon{ring})
	f.Properties = geojson.Properties{
		"source":       meta.Source,
		"crs":          meta.CRS,
		"run_id":       meta.RunID,
		"pixel_area":   meta.PixelArea,
		"area":         meta.GeoArea,
		"epsilon":      meta.Epsilon,
		"raw_vertices": meta.RawVertices,
		"vertices":     meta.Vertices,
		"components":   meta.Components,
	}
	fc.Append(f)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return nil
}
