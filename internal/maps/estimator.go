// README: Route estimator; asks a directions backend and synthesizes a straight-line plan on any failure.
package maps

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"ordertrack/internal/modules/geo"
)

const DefaultTimeout = 4 * time.Second

type Estimator struct {
	directions Directions
	timeout    time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewEstimator accepts a nil directions backend; every estimate is then synthesized.
func NewEstimator(directions Directions, timeout time.Duration, logger *slog.Logger) *Estimator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{directions: directions, timeout: timeout, logger: logger, now: time.Now}
}

// Estimate never fails. Backend errors, timeouts and malformed responses all yield
// the synthesized plan.
func (e *Estimator) Estimate(ctx context.Context, q Query) RoutePlan {
	if e.directions == nil {
		return e.stamp(Fallback(q))
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	route, err := e.directions.Route(ctx, q)
	if err == nil {
		var plan RoutePlan
		plan, err = fromRoute(route, q)
		if err == nil {
			return e.stamp(plan)
		}
	}
	e.logger.Warn("route_fallback", "order_id", q.OrderID, "route_type", q.RouteType, "error", err)
	return e.stamp(Fallback(q))
}

func (e *Estimator) stamp(p RoutePlan) RoutePlan {
	p.ComputedAt = e.now()
	return p
}

// Fallback is the synthesized two-point plan with the formula ETA.
func Fallback(q Query) RoutePlan {
	km := geo.FlatEarthKm(q.Origin, q.Destination)
	minutes := geo.FallbackMinutes(km, q.PickedUp)
	return RoutePlan{
		Coordinates:     normalizeEndpoints(nil, q.Origin, q.Destination),
		DistanceText:    geo.DistanceText(km),
		DurationText:    geo.DurationText(minutes),
		DistanceKm:      km,
		DurationSeconds: minutes * 60,
		Provenance:      ProvenanceSynthesized,
		RouteType:       q.RouteType,
		Origin:          q.Origin,
		Destination:     q.Destination,
		PickedUp:        q.PickedUp,
	}
}

func fromRoute(r *Route, q Query) (RoutePlan, error) {
	if r == nil {
		return RoutePlan{}, ErrNoRoute
	}
	path := r.Coordinates
	if len(path) == 0 && r.Polyline != "" {
		decoded, err := geo.DecodePolyline(r.Polyline)
		if err != nil {
			return RoutePlan{}, fmt.Errorf("%w: %v", ErrMalformedRoute, err)
		}
		path = decoded
	}
	if len(path) == 0 {
		return RoutePlan{}, fmt.Errorf("%w: no coordinates", ErrMalformedRoute)
	}
	for _, p := range path {
		if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.Abs(p.Lat) > 90 || math.Abs(p.Lng) > 180 {
			return RoutePlan{}, fmt.Errorf("%w: coordinate out of range", ErrMalformedRoute)
		}
	}
	path = normalizeEndpoints(path, q.Origin, q.Destination)

	km := r.DistanceMeters / 1000
	if km <= 0 {
		km = pathLengthKm(path)
	}
	seconds := int(math.Round(r.DurationSeconds))
	if seconds <= 0 {
		seconds = geo.FallbackMinutes(km, q.PickedUp) * 60
	}
	plan := RoutePlan{
		Coordinates:     path,
		DistanceText:    r.DistanceText,
		DurationText:    r.DurationText,
		DistanceKm:      km,
		DurationSeconds: seconds,
		Provenance:      ProvenanceService,
		RouteType:       q.RouteType,
		Origin:          q.Origin,
		Destination:     q.Destination,
		PickedUp:        q.PickedUp,
	}
	if plan.DistanceText == "" {
		plan.DistanceText = geo.DistanceText(km)
	}
	if plan.DurationText == "" {
		plan.DurationText = geo.DurationText(int(math.Ceil(float64(seconds) / 60)))
	}
	return plan, nil
}
