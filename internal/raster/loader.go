package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/parallel"
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// ErrEmptyRaster indicates a decoded mask image with zero width or height.
var ErrEmptyRaster = errors.New("raster: mask has no pixels")

// Mask couples a thresholded binary raster with the affine transform and
// coordinate-reference identifier that georeference it.
//
// A Mask is the read-only input artifact of a pipeline run. Callers must
// not mutate Grid after construction; stages that change pixels always
// allocate new Bitmaps.
type Mask struct {
	Grid      *Bitmap
	Transform Affine
	CRS       string
	Source    string
}

// Threshold converts an image into a binary bitmap: pixels whose luminance
// is at least level become foreground.
//
// Grayscale inputs are compared directly. Color inputs are reduced with
// ITU-R BT.601 luminance weights (0.299·R + 0.587·G + 0.114·B) before the
// comparison, matching how probability masks rendered into RGB images are
// read back. Rows are processed in parallel blocks.
func Threshold(img image.Image, level uint8) *Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewBitmap(w, h)

	switch src := img.(type) {
	case *image.Gray:
		parallel.Line(h, func(start, end int) {
			for y := start; y < end; y++ {
				off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
				row := src.Pix[off : off+w]
				for x, v := range row {
					if v >= level {
						out.Pix[y*w+x] = 1
					}
				}
			}
		})
	default:
		parallel.Line(h, func(start, end int) {
			for y := start; y < end; y++ {
				for x := 0; x < w; x++ {
					r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
					luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
					if uint8(luma) >= level {
						out.Pix[y*w+x] = 1
					}
				}
			}
		})
	}
	return out
}

// LoadMask reads the mask image at path, thresholds it at level, and
// attaches the affine transform found in the world-file sidecar along with
// the caller-supplied coordinate-reference identifier.
//
// The image format is detected from the stream; PNG, JPEG, GIF, and TIFF
// are supported. The world file is required: a mask without one cannot be
// georeferenced and fails with ErrNoWorldFile. A transform whose
// determinant is zero fails with ErrSingularTransform, since the inverse
// mapping must exist for geographic round-trips.
func LoadMask(path string, level uint8, crs string) (*Mask, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mask image: %w", err)
	}
	transform, err := loadTransform(path)
	if err != nil {
		return nil, err
	}
	return maskFromImage(img, transform, path, level, crs)
}

// loadTransform locates and parses the world-file sidecar for path and
// verifies the transform is invertible.
func loadTransform(path string) (Affine, error) {
	worldPath, err := FindWorldFile(path)
	if err != nil {
		return Affine{}, err
	}
	transform, err := ReadWorldFile(worldPath)
	if err != nil {
		return Affine{}, err
	}
	if _, err := transform.Invert(); err != nil {
		return Affine{}, err
	}
	return transform, nil
}

func maskFromImage(img image.Image, transform Affine, source string, level uint8, crs string) (*Mask, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyRaster, source)
	}
	return &Mask{
		Grid:      Threshold(img, level),
		Transform: transform,
		CRS:       crs,
		Source:    source,
	}, nil
}

// Cache provides thread-safe reuse of loaded masks.
//
// Decoding and thresholding a large mosaic dominates the cost of repeated
// extractions over the same file (for example an epsilon or radius sweep),
// so entries are keyed by path and threshold level and the decoded Bitmap
// is shared between the returned Masks. That sharing is safe because Masks
// are read-only by contract.
//
// Entries remain cached until Evict or Clear is called.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	grid      *Bitmap
	transform Affine
}

// NewCache creates an empty mask cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func cacheKey(path string, level uint8) string {
	return fmt.Sprintf("%s#%d", path, level)
}

// Load returns the mask for path at the given threshold level, reading and
// thresholding the image only if no cached entry exists.
func (c *Cache) Load(path string, level uint8, crs string) (*Mask, error) {
	key := cacheKey(path, level)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return &Mask{Grid: entry.grid, Transform: entry.transform, CRS: crs, Source: path}, nil
	}

	mask, err := LoadMask(path, level, crs)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{grid: mask.Grid, transform: mask.Transform}
	c.mu.Unlock()

	return mask, nil
}

// Evict removes the cached entry for path at the given threshold level.
func (c *Cache) Evict(path string, level uint8) {
	c.mu.Lock()
	delete(c.entries, cacheKey(path, level))
	c.mu.Unlock()
}

// Clear removes all cached entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
