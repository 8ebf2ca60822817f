package geo

import "testing"

func TestFallbackMinutes(t *testing.T) {
	cases := []struct {
		km       float64
		pickedUp bool
		want     int
	}{
		{0, false, 15},
		{1, false, 20},
		{2.01, false, 26}, // 25.05 -> 26
		{3.4, false, 32},
		{0, true, 5},
		{2, true, 11},
		{2.1, true, 12}, // 11.3 -> 12
		{-1, false, 15},
	}
	for _, tc := range cases {
		if got := FallbackMinutes(tc.km, tc.pickedUp); got != tc.want {
			t.Errorf("FallbackMinutes(%v, %v) = %d, want %d", tc.km, tc.pickedUp, got, tc.want)
		}
	}
}

func TestDistanceAndDurationText(t *testing.T) {
	if got := DistanceText(3.44); got != "3.4 km" {
		t.Errorf("DistanceText(3.44) = %q", got)
	}
	if got := DistanceText(0.25); got != "250 m" {
		t.Errorf("DistanceText(0.25) = %q", got)
	}
	if got := DurationText(1); got != "1 min" {
		t.Errorf("DurationText(1) = %q", got)
	}
	if got := DurationText(23); got != "23 mins" {
		t.Errorf("DurationText(23) = %q", got)
	}
}
