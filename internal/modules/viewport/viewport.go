// README: Map region fitting for the set of known tracking points.
package viewport

import (
	"math"

	"ordertrack/internal/modules/geo"
	"ordertrack/internal/types"
)

const (
	DefaultMinSpanDegrees = 0.01
	DefaultPadding        = 0.25
)

type Region struct {
	Center         types.Point `json:"center"`
	LatitudeDelta  float64     `json:"latitudeDelta"`
	LongitudeDelta float64     `json:"longitudeDelta"`
}

func (r Region) Bounds() geo.Bounds {
	return geo.Bounds{
		South: r.Center.Lat - r.LatitudeDelta/2,
		North: r.Center.Lat + r.LatitudeDelta/2,
		West:  r.Center.Lng - r.LongitudeDelta/2,
		East:  r.Center.Lng + r.LongitudeDelta/2,
	}
}

type Fitter struct {
	MinSpan float64
	// Padding is added on each side as a fraction of the raw span.
	Padding float64
}

func NewFitter() Fitter {
	return Fitter{MinSpan: DefaultMinSpanDegrees, Padding: DefaultPadding}
}

// Fit returns ok=false when there are no points; callers keep their prior region.
func (f Fitter) Fit(points []types.Point) (Region, bool) {
	b, ok := geo.BoundingBox(points)
	if !ok {
		return Region{}, false
	}
	latSpan := (b.North - b.South) * (1 + 2*f.Padding)
	lngSpan := (b.East - b.West) * (1 + 2*f.Padding)
	return Region{
		Center:         b.Center(),
		LatitudeDelta:  math.Max(latSpan, f.MinSpan),
		LongitudeDelta: math.Max(lngSpan, f.MinSpan),
	}, true
}
