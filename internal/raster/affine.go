package raster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Sentinel errors for georeferencing input.
var (
	// ErrNoWorldFile indicates no world-file sidecar exists for a mask image.
	ErrNoWorldFile = errors.New("raster: no world file found for mask")
	// ErrBadWorldFile indicates a world file that does not contain six
	// parseable coefficients.
	ErrBadWorldFile = errors.New("raster: malformed world file")
	// ErrSingularTransform indicates an affine transform with zero
	// determinant, which cannot be inverted to map geographic coordinates
	// back to pixels.
	ErrSingularTransform = errors.New("raster: affine transform is not invertible")
)

// Affine is a 6-coefficient transform from pixel (column, row) coordinates
// to geographic (x, y) coordinates:
//
//	x = A·col + B·row + C
//	y = D·col + E·row + F
//
// For the common north-up raster, B and D are zero, A is the pixel width,
// E is the negative pixel height, and (C, F) is the geographic position of
// the upper-left pixel center.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the transform that maps pixel coordinates to themselves.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Apply maps a pixel (column, row) coordinate to geographic (x, y).
func (t Affine) Apply(col, row float64) (x, y float64) {
	return t.A*col + t.B*row + t.C, t.D*col + t.E*row + t.F
}

// Invert returns the transform mapping geographic (x, y) back to pixel
// (column, row). It fails with ErrSingularTransform when the determinant
// A·E − B·D is zero.
func (t Affine) Invert() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if det == 0 {
		return Affine{}, ErrSingularTransform
	}
	return Affine{
		A: t.E / det,
		B: -t.B / det,
		C: (t.B*t.F - t.E*t.C) / det,
		D: -t.D / det,
		E: t.A / det,
		F: (t.D*t.C - t.A*t.F) / det,
	}, nil
}

// ParseWorld reads the six world-file coefficients from r. World files
// store one coefficient per line in the order A, D, B, E, C, F (x-scale,
// y-skew, x-skew, y-scale, x-origin, y-origin).
func ParseWorld(r io.Reader) (Affine, error) {
	var vals []float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return Affine{}, fmt.Errorf("%w: %q", ErrBadWorldFile, line)
		}
		vals = append(vals, v)
	}
	if err := scanner.Err(); err != nil {
		return Affine{}, fmt.Errorf("failed to read world file: %w", err)
	}
	if len(vals) < 6 {
		return Affine{}, fmt.Errorf("%w: expected 6 coefficients, got %d", ErrBadWorldFile, len(vals))
	}
	return Affine{
		A: vals[0], D: vals[1], B: vals[2],
		E: vals[3], C: vals[4], F: vals[5],
	}, nil
}

// FormatWorld writes the transform to w in world-file line order.
func (t Affine) FormatWorld(w io.Writer) error {
	for _, v := range []float64{t.A, t.D, t.B, t.E, t.C, t.F} {
		if _, err := fmt.Fprintf(w, "%.10g\n", v); err != nil {
			return fmt.Errorf("failed to write world file: %w", err)
		}
	}
	return nil
}

// ReadWorldFile parses the world file at path.
func ReadWorldFile(path string) (Affine, error) {
	f, err := os.Open(path)
	if err != nil {
		return Affine{}, fmt.Errorf("failed to open world file: %w", err)
	}
	defer f.Close()
	return ParseWorld(f)
}

// FindWorldFile locates the world-file sidecar for an image path. It first
// tries the ESRI convention (first and last letter of the image extension
// plus "w", e.g. .png→.pgw, .tif→.tfw), then the generic .wld extension.
// Returns ErrNoWorldFile when neither exists.
func FindWorldFile(imagePath string) (string, error) {
	ext := filepath.Ext(imagePath)
	base := strings.TrimSuffix(imagePath, ext)

	var candidates []string
	if n := len(ext); n >= 3 {
		// ext includes the dot: ".png" → "p" + "g" + "w"
		derived := "." + string(ext[1]) + string(ext[n-1]) + "w"
		candidates = append(candidates, base+derived)
	}
	candidates = append(candidates, base+".wld")

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrNoWorldFile, strings.Join(candidates, ", "))
}
