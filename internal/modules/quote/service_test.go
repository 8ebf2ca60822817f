package quote

import (
	"errors"
	"math"
	"testing"

	"ordertrack/internal/maps"
	"ordertrack/internal/types"
)

func TestService_Estimate(t *testing.T) {
	branch := types.Point{Lat: 12.9716, Lng: 77.5946}
	tests := []struct {
		name     string
		customer types.Point
		wantMin  int
	}{
		{"same block", types.Point{Lat: 12.9716, Lng: 77.5947}, 16},
		{"1.1 km north", types.Point{Lat: 12.9716 + 1.1/111, Lng: 77.5946}, 21},
		{"10.1 km north", types.Point{Lat: 12.9716 + 10.1/111, Lng: 77.5946}, 66},
	}
	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := svc.Estimate(Request{Branch: branch, Customer: tt.customer})
			if err != nil {
				t.Fatalf("Estimate: %v", err)
			}
			if q.Minutes != tt.wantMin {
				t.Errorf("minutes = %d, want %d (km=%f)", q.Minutes, tt.wantMin, q.DistanceKm)
			}
		})
	}
}

// The checkout estimate and the in-tracking fallback must agree so the numbers a
// customer sees do not change between screens.
func TestService_MatchesTrackingFallback(t *testing.T) {
	branch := types.Point{Lat: 12.9716, Lng: 77.5946}
	svc := NewService()
	for _, km := range []float64{0.3, 1, 2.5, 4.2, 7.77, 12, 25} {
		customer := types.Point{Lat: branch.Lat + km/111*0.6, Lng: branch.Lng + km/111*0.8}
		q, err := svc.Estimate(Request{Branch: branch, Customer: customer})
		if err != nil {
			t.Fatalf("Estimate: %v", err)
		}
		plan := maps.Fallback(maps.Query{Origin: branch, Destination: customer, RouteType: maps.RouteBranchToCustomer})
		if plan.DurationSeconds != q.Minutes*60 {
			t.Errorf("km=%v: tracking %ds vs checkout %dmin", km, plan.DurationSeconds, q.Minutes)
		}
		if math.Abs(plan.DistanceKm-q.DistanceKm) > 1e-12 || plan.DurationText != q.DurationText {
			t.Errorf("km=%v: plan %+v vs quote %+v", km, plan, q)
		}
		if want := int(math.Ceil(q.DistanceKm*5 + 15)); q.Minutes != want {
			t.Errorf("km=%v: minutes %d, want ceil(d*5+15)=%d", km, q.Minutes, want)
		}
	}
}

func TestService_RejectsInvalidPoints(t *testing.T) {
	_, err := NewService().Estimate(Request{Branch: types.Point{}, Customer: types.Point{Lat: 1, Lng: 1}})
	if !errors.Is(err, ErrInvalidPoint) {
		t.Errorf("err = %v", err)
	}
}
