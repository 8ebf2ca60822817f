// README: Shared identifiers and geographic point value object.
package types

import (
	"fmt"
	"math"
)

type ID string

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Valid reports whether the point is inside the coordinate ranges and is not the
// zero value, which the order API uses for "unknown".
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return false
	}
	return p.Lat != 0 || p.Lng != 0
}

// Equal compares with a tolerance in degrees.
func (p Point) Equal(o Point, eps float64) bool {
	return math.Abs(p.Lat-o.Lat) <= eps && math.Abs(p.Lng-o.Lng) <= eps
}

// LatLngString formats the point the way directions APIs expect ("lat,lng").
func (p Point) LatLngString() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}
