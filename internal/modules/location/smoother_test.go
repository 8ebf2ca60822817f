package location

import (
	"math"
	"testing"
	"time"

	"ordertrack/internal/types"
)

func TestSmoother_IntermediatePositionsOnSegment(t *testing.T) {
	a := types.Point{Lat: 12.90, Lng: 77.50}
	b := types.Point{Lat: 12.94, Lng: 77.58}
	t0 := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	s := NewSmoother(2 * time.Second)
	s.Push(a, t0)
	if got, _ := s.At(t0); got != a {
		t.Fatalf("first push must jump, got %+v", got)
	}
	s.Push(b, t0)

	prevF := -1.0
	for ms := 0; ms <= 2000; ms += 100 {
		p, ok := s.At(t0.Add(time.Duration(ms) * time.Millisecond))
		if !ok {
			t.Fatal("no position")
		}
		fLat := (p.Lat - a.Lat) / (b.Lat - a.Lat)
		fLng := (p.Lng - a.Lng) / (b.Lng - a.Lng)
		if math.Abs(fLat-fLng) > 1e-9 {
			t.Fatalf("t=%dms point %+v is off the A->B segment", ms, p)
		}
		if fLat < -1e-12 || fLat > 1+1e-12 || fLat < prevF {
			t.Fatalf("t=%dms fraction %f not monotonic within [0,1]", ms, fLat)
		}
		prevF = fLat
	}
	if got, _ := s.At(t0.Add(2 * time.Second)); got != b {
		t.Errorf("position after window = %+v, want exactly %+v", got, b)
	}
	if got, _ := s.At(t0.Add(time.Hour)); got != b {
		t.Errorf("position long after window = %+v", got)
	}
	if s.Animating(t0.Add(2 * time.Second)) {
		t.Error("still animating after the window")
	}
}

func TestSmoother_RetargetMidFlightStartsFromDisplayed(t *testing.T) {
	a := types.Point{Lat: 0, Lng: 0}
	b := types.Point{Lat: 1, Lng: 1}
	c := types.Point{Lat: 1, Lng: 2}
	t0 := time.Unix(1000, 0)

	s := NewSmoother(2 * time.Second)
	s.Push(a, t0)
	s.Push(b, t0)
	mid := t0.Add(time.Second)
	displayed, _ := s.At(mid)
	s.Push(c, mid)
	if got, _ := s.At(mid); got != displayed {
		t.Errorf("retarget jumped from %+v to %+v", displayed, got)
	}
	if target, _ := s.Target(); target != c {
		t.Errorf("target = %+v, want %+v", target, c)
	}
	if !s.Animating(mid.Add(500 * time.Millisecond)) {
		t.Error("expected animation in progress")
	}
}

func TestSmoother_Empty(t *testing.T) {
	s := NewSmoother(time.Second)
	if _, ok := s.At(time.Now()); ok {
		t.Error("empty smoother reported a position")
	}
	if s.Animating(time.Now()) {
		t.Error("empty smoother animating")
	}
}
