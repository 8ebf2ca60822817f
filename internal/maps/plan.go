// README: Route plan value object, directions backend contract, and recompute rules.
package maps

import (
	"context"
	"errors"
	"time"

	"ordertrack/internal/modules/geo"
	"ordertrack/internal/types"
)

type Provenance string

const (
	ProvenanceService     Provenance = "service"
	ProvenanceSynthesized Provenance = "synthesized"
)

type RouteType string

const (
	RouteBranchToCustomer  RouteType = "branch-to-customer"
	RoutePartnerToCustomer RouteType = "partner-to-customer"
)

// endpointEpsilon is roughly one metre, below polyline precision.
const endpointEpsilon = 1e-5

var (
	ErrNoRoute        = errors.New("no route found")
	ErrMalformedRoute = errors.New("malformed route response")
)

type Query struct {
	OrderID            types.ID    `json:"orderId"`
	Origin             types.Point `json:"origin"`
	Destination        types.Point `json:"destination"`
	OriginAddress      string      `json:"originAddress,omitempty"`
	DestinationAddress string      `json:"destinationAddress,omitempty"`
	RouteType          RouteType   `json:"routeType"`
	PickedUp           bool        `json:"pickedUp"`
}

// Route is what a directions backend returns before normalization.
type Route struct {
	Coordinates     []types.Point
	Polyline        string
	DistanceText    string
	DurationText    string
	DistanceMeters  float64
	DurationSeconds float64
}

type Directions interface {
	Route(ctx context.Context, q Query) (*Route, error)
}

// RoutePlan always starts at Origin and ends at Destination.
type RoutePlan struct {
	Coordinates     []types.Point `json:"coordinates"`
	DistanceText    string        `json:"distanceText"`
	DurationText    string        `json:"durationText"`
	DistanceKm      float64       `json:"distanceKm"`
	DurationSeconds int           `json:"durationSeconds"`
	Provenance      Provenance    `json:"provenance"`
	RouteType       RouteType     `json:"routeType"`
	Origin          types.Point   `json:"origin"`
	Destination     types.Point   `json:"destination"`
	PickedUp        bool          `json:"pickedUp"`
	ComputedAt      time.Time     `json:"computedAt"`
}

func (p *RoutePlan) Clone() *RoutePlan {
	if p == nil {
		return nil
	}
	c := *p
	c.Coordinates = append([]types.Point(nil), p.Coordinates...)
	return &c
}

// Changed reports whether next asks for a different route than prev: the pickup
// boundary was crossed, the destination changed, or the origin moved more than
// epsilonMeters.
func Changed(prev, next Query, epsilonMeters float64) bool {
	if prev.PickedUp != next.PickedUp || prev.RouteType != next.RouteType {
		return true
	}
	if !prev.Destination.Equal(next.Destination, endpointEpsilon) {
		return true
	}
	return geo.HaversineMeters(prev.Origin, next.Origin) > epsilonMeters
}

// Relevant reports whether a plan computed for q may still be applied once the
// session has moved on to current. Origin drift is tolerated; boundary and
// destination changes are not.
func Relevant(plan RoutePlan, current Query) bool {
	return plan.PickedUp == current.PickedUp &&
		plan.RouteType == current.RouteType &&
		plan.Destination.Equal(current.Destination, endpointEpsilon)
}

// normalizeEndpoints pins the first and last coordinates to the requested points,
// replacing near-equal endpoints and otherwise extending the path.
func normalizeEndpoints(path []types.Point, origin, dest types.Point) []types.Point {
	out := make([]types.Point, 0, len(path)+2)
	if len(path) == 0 || !path[0].Equal(origin, endpointEpsilon) {
		out = append(out, origin)
	}
	out = append(out, path...)
	if len(path) > 0 && path[0].Equal(origin, endpointEpsilon) {
		out[0] = origin
	}
	last := len(out) - 1
	if out[last].Equal(dest, endpointEpsilon) && last > 0 {
		out[last] = dest
	} else {
		out = append(out, dest)
	}
	return out
}

func pathLengthKm(path []types.Point) float64 {
	var km float64
	for i := 1; i < len(path); i++ {
		km += geo.HaversineKm(path[i-1], path[i])
	}
	return km
}
