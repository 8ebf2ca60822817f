// Package geo contains pure geographic computation helpers shared by the route
// estimator, the viewport fitter and the position smoother.
package geo

import (
	"math"

	"ordertrack/internal/types"
)

const (
	earthRadiusKm = 6371.0
	// kmPerDegree is the flat-earth approximation used by the synthesized route.
	kmPerDegree = 111.0
)

// HaversineKm returns the great-circle distance in kilometres between two points.
func HaversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// HaversineMeters is HaversineKm in metres.
func HaversineMeters(a, b types.Point) float64 {
	return HaversineKm(a, b) * 1000
}

// FlatEarthKm is sqrt((Δlat·111)² + (Δlon·111·cos(lat))²) with lat taken from the origin.
// It must stay identical to the checkout quote formula.
func FlatEarthKm(origin, dest types.Point) float64 {
	dLat := (dest.Lat - origin.Lat) * kmPerDegree
	dLng := (dest.Lng - origin.Lng) * kmPerDegree * math.Cos(degreesToRadians(origin.Lat))
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// BearingDegrees returns the initial bearing from a to b, normalised to [0, 360).
func BearingDegrees(a, b types.Point) float64 {
	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(rLat2)
	x := math.Cos(rLat1)*math.Sin(rLat2) - math.Sin(rLat1)*math.Cos(rLat2)*math.Cos(dLng)
	deg := radiansToDegrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// Lerp interpolates linearly between a and b; f is clamped to [0, 1] and f == 1
// returns b exactly.
func Lerp(a, b types.Point, f float64) types.Point {
	switch {
	case f <= 0:
		return a
	case f >= 1:
		return b
	}
	return types.Point{
		Lat: a.Lat + (b.Lat-a.Lat)*f,
		Lng: a.Lng + (b.Lng-a.Lng)*f,
	}
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
