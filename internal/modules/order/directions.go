// README: Wire types for the order service customer directions endpoint.
package order

import (
	"encoding/json"
	"fmt"

	"ordertrack/internal/types"
)

type Waypoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

func WaypointOf(p types.Point, address string) Waypoint {
	return Waypoint{Latitude: p.Lat, Longitude: p.Lng, Address: address}
}

type DirectionsRequest struct {
	Origin      Waypoint `json:"origin"`
	Destination Waypoint `json:"destination"`
	RouteType   string   `json:"routeType"`
	UpdateOrder bool     `json:"updateOrder"`
}

type TextValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type RouteData struct {
	Distance    TextValue    `json:"distance"`
	Duration    TextValue    `json:"duration"`
	Coordinates []Coordinate `json:"coordinates,omitempty"`
	Polyline    Polyline     `json:"polyline,omitempty"`
}

type DirectionsResponse struct {
	RouteData *RouteData `json:"routeData"`
}

// Coordinate accepts {latitude,longitude} and {lat,lng} objects.
type Coordinate types.Point

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var raw struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.Latitude != nil && raw.Longitude != nil:
		*c = Coordinate{Lat: *raw.Latitude, Lng: *raw.Longitude}
	case raw.Lat != nil && raw.Lng != nil:
		*c = Coordinate{Lat: *raw.Lat, Lng: *raw.Lng}
	default:
		return fmt.Errorf("coordinate: missing latitude/longitude in %s", b)
	}
	return nil
}

// Polyline accepts a bare encoded string or a {"points": "..."} object.
type Polyline string

func (p *Polyline) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Polyline(s)
		return nil
	}
	var obj struct {
		Points string `json:"points"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*p = Polyline(obj.Points)
	return nil
}

func (r *RouteData) Points() []types.Point {
	out := make([]types.Point, 0, len(r.Coordinates))
	for _, c := range r.Coordinates {
		out = append(out, types.Point(c))
	}
	return out
}
