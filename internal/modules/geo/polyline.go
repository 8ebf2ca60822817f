package geo

import (
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"ordertrack/internal/types"
)

var ErrMalformedPolyline = errors.New("malformed polyline")

// DecodePolyline decodes the 5-decimal zig-zag delta polyline format.
func DecodePolyline(encoded string) ([]types.Point, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedPolyline)
	}
	latlngs, err := maps.DecodePolyline(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPolyline, err)
	}
	if len(latlngs) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrMalformedPolyline)
	}
	points := make([]types.Point, len(latlngs))
	for i, ll := range latlngs {
		p := types.Point{Lat: ll.Lat, Lng: ll.Lng}
		if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
			return nil, fmt.Errorf("%w: point %d out of range", ErrMalformedPolyline, i)
		}
		points[i] = p
	}
	return points, nil
}

// EncodePolyline is the inverse of DecodePolyline.
func EncodePolyline(points []types.Point) string {
	latlngs := make([]maps.LatLng, len(points))
	for i, p := range points {
		latlngs[i] = maps.LatLng{Lat: p.Lat, Lng: p.Lng}
	}
	return maps.Encode(latlngs)
}
