package geo

import (
	"math"

	"ordertrack/internal/types"
)

// Bounds is an axis-aligned lat/lng box.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// BoundingBox returns the smallest box containing every point. ok is false for an
// empty slice. Antimeridian crossing is not handled; delivery areas are city-sized.
func BoundingBox(points []types.Point) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b = Bounds{South: math.Inf(1), West: math.Inf(1), North: math.Inf(-1), East: math.Inf(-1)}
	for _, p := range points {
		b.South = math.Min(b.South, p.Lat)
		b.North = math.Max(b.North, p.Lat)
		b.West = math.Min(b.West, p.Lng)
		b.East = math.Max(b.East, p.Lng)
	}
	return b, true
}

// Contains reports whether p lies inside or on the box.
func (b Bounds) Contains(p types.Point) bool {
	return p.Lat >= b.South && p.Lat <= b.North && p.Lng >= b.West && p.Lng <= b.East
}

func (b Bounds) Center() types.Point {
	return types.Point{Lat: (b.South + b.North) / 2, Lng: (b.West + b.East) / 2}
}
