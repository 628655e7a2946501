package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/road-perimeter/internal/contour"
	"github.com/ironsheep/road-perimeter/internal/region"
)

// Options control overlay rendering.
type Options struct {
	// Width downscales the output to this width, preserving aspect
	// ratio. Zero keeps the native mask resolution.
	Width int
}

const goldenAngle = 137.508

var (
	backgroundColor = color.RGBA{R: 18, G: 18, B: 18, A: 255}
	rawRingColor    = color.RGBA{R: 230, G: 126, B: 34, A: 255}
	simplifiedColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Overlay paints every labeled component in its own color with the
// selected component highlighted, then draws the raw and simplified
// perimeter rings on top. Either ring may be nil.
func Overlay(lab *region.Labeling, selected int32, raw, simplified contour.Ring, opts Options) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, lab.Width, lab.Height))
	for y := 0; y < lab.Height; y++ {
		for x := 0; x < lab.Width; x++ {
			label := lab.Labels[y*lab.Width+x]
			if label == 0 {
				img.SetRGBA(x, y, backgroundColor)
				continue
			}
			img.SetRGBA(x, y, componentColor(label, label == selected))
		}
	}
	drawRing(img, raw, rawRingColor)
	drawRing(img, simplified, simplifiedColor)

	if opts.Width > 0 && opts.Width < lab.Width {
		return imaging.Resize(img, opts.Width, 0, imaging.Lanczos)
	}
	return img
}

// Save writes the overlay as a PNG file.
func Save(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}

// componentColor assigns each label a hue advanced by the golden angle,
// so consecutive labels land far apart on the color wheel. The selected
// component is saturated and bright; the rest stay muted.
func componentColor(label int32, selected bool) color.RGBA {
	hue := math.Mod(float64(label)*goldenAngle, 360)
	c := colorful.Hsv(hue, 0.35, 0.45)
	if selected {
		c = colorful.Hsv(hue, 0.85, 1.0)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawRing draws the ring edges including the one closing last to first.
func drawRing(img *image.RGBA, ring contour.Ring, c color.RGBA) {
	n := len(ring)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		drawLine(img, round(a.X), round(a.Y), round(b.X), round(b.Y), c)
	}
}

// drawLine is integer Bresenham, clipped to the image bounds.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func round(v float64) int { return int(math.Round(v)) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
