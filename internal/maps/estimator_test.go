package maps

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gmaps "googlemaps.github.io/maps"

	"ordertrack/internal/modules/geo"
	"ordertrack/internal/modules/order"
	"ordertrack/internal/types"
)

var (
	branch   = types.Point{Lat: 12.9716, Lng: 77.5946}
	customer = types.Point{Lat: 12.9352, Lng: 77.6245}
)

type stubDirections struct {
	route *Route
	err   error
	block bool
	calls int
}

func (s *stubDirections) Route(ctx context.Context, q Query) (*Route, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.route, s.err
}

func branchQuery() Query {
	return Query{OrderID: "o1", Origin: branch, Destination: customer, RouteType: RouteBranchToCustomer}
}

func assertEndpoints(t *testing.T, p RoutePlan, q Query) {
	t.Helper()
	if len(p.Coordinates) < 2 {
		t.Fatalf("plan has %d coordinates", len(p.Coordinates))
	}
	if !p.Coordinates[0].Equal(q.Origin, 1e-9) {
		t.Errorf("first = %+v, want origin %+v", p.Coordinates[0], q.Origin)
	}
	if last := p.Coordinates[len(p.Coordinates)-1]; !last.Equal(q.Destination, 1e-9) {
		t.Errorf("last = %+v, want destination %+v", last, q.Destination)
	}
}

func TestEstimate_FallbackOnBackendError(t *testing.T) {
	est := NewEstimator(&stubDirections{err: errors.New("connection refused")}, time.Second, nil)
	q := branchQuery()
	p := est.Estimate(context.Background(), q)
	if p.Provenance != ProvenanceSynthesized {
		t.Fatalf("provenance = %s", p.Provenance)
	}
	if len(p.Coordinates) != 2 {
		t.Fatalf("fallback must be exactly [origin, destination], got %d points", len(p.Coordinates))
	}
	assertEndpoints(t, p, q)
	km := geo.FlatEarthKm(branch, customer)
	wantMin := int(math.Ceil(km*5 + 15))
	if p.DurationSeconds != wantMin*60 {
		t.Errorf("duration = %ds, want %dm", p.DurationSeconds, wantMin)
	}
	if p.ComputedAt.IsZero() {
		t.Error("ComputedAt not stamped")
	}
}

func TestEstimate_FallbackPostPickupFormula(t *testing.T) {
	q := branchQuery()
	q.PickedUp = true
	q.RouteType = RoutePartnerToCustomer
	p := NewEstimator(nil, 0, nil).Estimate(context.Background(), q)
	km := geo.FlatEarthKm(branch, customer)
	if want := int(math.Ceil(km*3+5)) * 60; p.DurationSeconds != want {
		t.Errorf("duration = %d, want %d", p.DurationSeconds, want)
	}
}

func TestEstimate_FallbackOnTimeout(t *testing.T) {
	stub := &stubDirections{block: true}
	est := NewEstimator(stub, 20*time.Millisecond, nil)
	start := time.Now()
	p := est.Estimate(context.Background(), branchQuery())
	if p.Provenance != ProvenanceSynthesized {
		t.Fatalf("provenance = %s", p.Provenance)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("estimate blocked for %v", elapsed)
	}
}

func TestEstimate_FallbackOnMalformedResponses(t *testing.T) {
	cases := map[string]*Route{
		"nil route":    nil,
		"empty":        {DistanceText: "1 km"},
		"bad polyline": {Polyline: "_"},
		"out of range": {Coordinates: []types.Point{{Lat: 120, Lng: 0}}},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			q := branchQuery()
			p := NewEstimator(&stubDirections{route: r}, time.Second, nil).Estimate(context.Background(), q)
			if p.Provenance != ProvenanceSynthesized {
				t.Errorf("provenance = %s, want synthesized", p.Provenance)
			}
			assertEndpoints(t, p, q)
		})
	}
}

func TestEstimate_ServiceCoordinatesNormalized(t *testing.T) {
	// Backend path starts a few metres off the origin and ends exactly near the destination.
	r := &Route{
		Coordinates: []types.Point{
			{Lat: 12.9717, Lng: 77.5950},
			{Lat: 12.9550, Lng: 77.6100},
			{Lat: customer.Lat + 1e-6, Lng: customer.Lng},
		},
		DistanceText:    "5.2 km",
		DurationText:    "14 mins",
		DistanceMeters:  5200,
		DurationSeconds: 840,
	}
	q := branchQuery()
	p := NewEstimator(&stubDirections{route: r}, time.Second, nil).Estimate(context.Background(), q)
	if p.Provenance != ProvenanceService {
		t.Fatalf("provenance = %s", p.Provenance)
	}
	assertEndpoints(t, p, q)
	if len(p.Coordinates) != 4 {
		t.Errorf("expected origin prepended and last replaced, got %d points", len(p.Coordinates))
	}
	if p.DistanceText != "5.2 km" || p.DurationSeconds != 840 || p.DistanceKm != 5.2 {
		t.Errorf("plan = %+v", p)
	}
}

func TestEstimate_ServicePolylineDecoded(t *testing.T) {
	path := []types.Point{branch, {Lat: 12.9550, Lng: 77.6100}, customer}
	r := &Route{Polyline: geo.EncodePolyline(path)}
	q := branchQuery()
	p := NewEstimator(&stubDirections{route: r}, time.Second, nil).Estimate(context.Background(), q)
	if p.Provenance != ProvenanceService {
		t.Fatalf("provenance = %s", p.Provenance)
	}
	assertEndpoints(t, p, q)
	if len(p.Coordinates) != 3 {
		t.Errorf("coordinates = %d, want 3", len(p.Coordinates))
	}
	if p.DistanceKm <= 0 || p.DurationText == "" || p.DistanceText == "" {
		t.Errorf("derived fields missing: %+v", p)
	}
}

func TestChanged(t *testing.T) {
	q := branchQuery()
	if Changed(q, q, 25) {
		t.Error("identical query must not recompute")
	}
	moved := q
	moved.Origin = types.Point{Lat: q.Origin.Lat + 0.0001, Lng: q.Origin.Lng} // ~11 m
	if Changed(q, moved, 25) {
		t.Error("sub-epsilon origin drift must not recompute")
	}
	moved.Origin = types.Point{Lat: q.Origin.Lat + 0.001, Lng: q.Origin.Lng} // ~111 m
	if !Changed(q, moved, 25) {
		t.Error("origin moved beyond epsilon must recompute")
	}
	dest := q
	dest.Destination = types.Point{Lat: 13, Lng: 77.7}
	if !Changed(q, dest, 25) {
		t.Error("destination change must recompute")
	}
	crossed := q
	crossed.PickedUp = true
	if !Changed(q, crossed, 25) {
		t.Error("pickup boundary crossing must recompute")
	}
}

func TestRelevant(t *testing.T) {
	q := branchQuery()
	plan := Fallback(q)
	drift := q
	drift.Origin = types.Point{Lat: 12.98, Lng: 77.60}
	if !Relevant(plan, drift) {
		t.Error("origin drift keeps a plan relevant")
	}
	crossed := q
	crossed.PickedUp = true
	crossed.RouteType = RoutePartnerToCustomer
	if Relevant(plan, crossed) {
		t.Error("plan from before pickup must be discarded after the boundary")
	}
}

func TestOrderServerDirections(t *testing.T) {
	path := []types.Point{branch, customer}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/o1/directions/customer" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"routeData":{"distance":{"text":"4.9 km","value":4900},"duration":{"text":"12 mins","value":720},"polyline":"`+geo.EncodePolyline(path)+`"}}`)
	}))
	defer srv.Close()

	est := NewEstimator(NewOrderServerDirections(order.NewClient(srv.URL, "")), time.Second, nil)
	q := branchQuery()
	p := est.Estimate(context.Background(), q)
	if p.Provenance != ProvenanceService || p.DurationText != "12 mins" || p.DistanceText != "4.9 km" {
		t.Fatalf("plan = %+v", p)
	}
	assertEndpoints(t, p, q)
}

func TestOrderServerDirections_ServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	est := NewEstimator(NewOrderServerDirections(order.NewClient(srv.URL, "")), time.Second, nil)
	if p := est.Estimate(context.Background(), branchQuery()); p.Provenance != ProvenanceSynthesized {
		t.Fatalf("provenance = %s", p.Provenance)
	}
}

func TestGoogleDirections(t *testing.T) {
	path := []types.Point{branch, {Lat: 12.95, Lng: 77.61}, customer}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/directions/json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("origin"); got != branch.LatLngString() {
			t.Errorf("origin = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"OK","routes":[{"summary":"ORR","overview_polyline":{"points":"`+geo.EncodePolyline(path)+`"},"legs":[{"distance":{"text":"6.0 km","value":6000},"duration":{"text":"17 mins","value":1020}}]}]}`)
	}))
	defer srv.Close()

	g, err := NewGoogleDirections("test-key", "en", "IN", gmaps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewGoogleDirections: %v", err)
	}
	q := branchQuery()
	p := NewEstimator(g, time.Second, nil).Estimate(context.Background(), q)
	if p.Provenance != ProvenanceService {
		t.Fatalf("provenance = %s", p.Provenance)
	}
	if p.DistanceText != "6.0 km" || p.DurationSeconds != 1020 || p.DurationText != "17 mins" {
		t.Errorf("plan = %+v", p)
	}
	assertEndpoints(t, p, q)
}
