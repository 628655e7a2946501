package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/ironsheep/road-perimeter/internal/geo"
	"github.com/ironsheep/road-perimeter/internal/pipeline"
	"github.com/ironsheep/road-perimeter/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-version", "-v", "version":
			fmt.Printf("road-perimeter %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return 0
		}
	}

	def := pipeline.Default()
	fs := flag.NewFlagSet("road-perimeter", flag.ContinueOnError)
	out := fs.String("out", "-", "GeoJSON output path (\"-\" = stdout)")
	paramsPath := fs.String("params", "", "JSON parameter file (explicit flags override it)")
	threshold := fs.Int("threshold", int(def.Threshold), "foreground threshold (0-255)")
	element := fs.String("element", def.Element, "structuring element shape: square, disk or cross")
	radius := fs.Int("radius", def.Radius, "structuring element radius in pixels")
	iterations := fs.Int("iterations", def.Iterations, "closing iterations (0 = skip closing)")
	connectivity := fs.Int("connectivity", def.Connectivity, "component connectivity: 4 or 8")
	minArea := fs.Int("min-area", def.MinArea, "minimum component area in pixels (0 = no filter)")
	epsilon := fs.Float64("epsilon", def.Epsilon, "simplification tolerance in pixels")
	crs := fs.String("crs", def.CRS, "coordinate reference identifier")
	tile := fs.Int("tile", def.TileSize, "tile size for tiled processing (0 = whole raster)")
	overlay := fs.String("overlay", "", "write a debug overlay PNG to this path")
	overlayWidth := fs.Int("overlay-width", 0, "downscale the overlay to this width (0 = native)")
	logLevel := fs.String("log-level", "info", "log level: trace, debug, info, warn, error")
	quiet := fs.Bool("quiet", false, "log errors only")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "road-perimeter - extract a city perimeter polygon from a road-network mask")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: road-perimeter [flags] <mask-path>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "The mask's world file (.pgw/.tfw/.wld) must sit beside the image.")
		fmt.Fprintln(os.Stderr, "GeoJSON goes to stdout unless -out names a file; logs go to stderr.")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	maskPath := fs.Arg(0)

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unknown log level %q\n", *logLevel)
		return 1
	}
	if *quiet {
		level = zerolog.ErrorLevel
	}
	// Logs go to stderr; stdout carries the GeoJSON.
	var lw io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		lw = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	log := zerolog.New(lw).Level(level).With().Timestamp().Logger()

	if *threshold < 0 || *threshold > 255 {
		log.Error().Int("threshold", *threshold).Msg("threshold must be between 0 and 255")
		return 2
	}

	p := def
	if *paramsPath != "" {
		p, err = pipeline.LoadParams(*paramsPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to load parameter file")
			return exitCode(err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "threshold":
			p.Threshold = uint8(*threshold)
		case "element":
			p.Element = *element
		case "radius":
			p.Radius = *radius
		case "iterations":
			p.Iterations = *iterations
		case "connectivity":
			p.Connectivity = *connectivity
		case "min-area":
			p.MinArea = *minArea
		case "epsilon":
			p.Epsilon = *epsilon
		case "crs":
			p.CRS = *crs
		case "tile":
			p.TileSize = *tile
		}
	})

	res, dbg, err := pipeline.RunDebug(maskPath, p, log)
	if err != nil {
		log.Error().Err(err).Str("mask", maskPath).Msg("extraction failed")
		return exitCode(err)
	}

	if err := writeOutput(*out, res); err != nil {
		log.Error().Err(err).Str("path", *out).Msg("failed to write GeoJSON")
		return exitCode(err)
	}

	if *overlay != "" {
		img := render.Overlay(dbg.Labeling, dbg.Selected.Label, dbg.Raw, dbg.Simplified,
			render.Options{Width: *overlayWidth})
		if err := render.Save(*overlay, img); err != nil {
			log.Error().Err(err).Str("path", *overlay).Msg("failed to write overlay")
			return 1
		}
		log.Info().Str("path", *overlay).Msg("wrote overlay")
	}

	log.Info().Str("out", *out).Int("vertices", res.Vertices).Msg("wrote perimeter")
	return 0
}

func writeOutput(path string, res *pipeline.Result) error {
	if path == "-" {
		return geo.WritePerimeter(os.Stdout, res.Polygon[0], res.Metadata())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := geo.WritePerimeter(f, res.Polygon[0], res.Metadata()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// exitCode maps failure categories to the documented exit codes. Faults
// outside the taxonomy (write errors, flag misuse) exit 1.
func exitCode(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInvalidConfig):
		return 2
	case errors.Is(err, pipeline.ErrBadInput):
		return 3
	case errors.Is(err, pipeline.ErrNoComponent):
		return 4
	case errors.Is(err, pipeline.ErrDegenerateGeometry):
		return 5
	default:
		return 1
	}
}
