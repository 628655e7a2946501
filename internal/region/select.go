package region

import (
	"errors"
	"fmt"

	"github.com/ironsheep/road-perimeter/internal/raster"
)

// ErrNoComponent indicates that nothing qualifies for selection: the mask
// has no foreground at all, or every component is smaller than the area
// threshold.
var ErrNoComponent = errors.New("region: no component meets the selection criteria")

// SelectPrimary returns the component with the largest pixel area among
// those with Area ≥ minArea. Area ties resolve to the lowest label, which
// is the component whose first pixel comes earliest in raster-scan order.
func SelectPrimary(l *Labeling, minArea int) (Component, error) {
	var best Component
	found := false
	for _, c := range l.Components {
		if c.Area < minArea {
			continue
		}
		if !found || c.Area > best.Area {
			best = c
			found = true
		}
	}
	if !found {
		return Component{}, fmt.Errorf("%w: %d components, none with area >= %d",
			ErrNoComponent, len(l.Components), minArea)
	}
	return best, nil
}

// Isolate returns a fresh bitmap containing only the pixels carrying the
// given label.
func Isolate(l *Labeling, label int32) *raster.Bitmap {
	out := raster.NewBitmap(l.Width, l.Height)
	for i, v := range l.Labels {
		if v == label {
			out.Pix[i] = 1
		}
	}
	return out
}
