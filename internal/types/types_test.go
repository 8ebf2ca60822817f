package types

import (
	"encoding/json"
	"math"
	"testing"
)

func TestMoneyUnmarshal_BareNumber(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`249.5`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Amount != 24950 || m.Currency != "INR" {
		t.Errorf("got %+v, want 24950 INR", m)
	}
}

func TestMoneyRoundTripObject(t *testing.T) {
	in := Money{Amount: 1999, Currency: "USD"}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Money
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
	if out.String() != "19.99 USD" {
		t.Errorf("String() = %q", out.String())
	}
}

func TestPointValid(t *testing.T) {
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{Lat: 12.97, Lng: 77.59}, true},
		{Point{}, false},
		{Point{Lat: 91, Lng: 0}, false},
		{Point{Lat: 0, Lng: -181}, false},
		{Point{Lat: math.NaN(), Lng: 1}, false},
	}
	for _, tc := range cases {
		if got := tc.p.Valid(); got != tc.want {
			t.Errorf("%+v.Valid() = %v, want %v", tc.p, got, tc.want)
		}
	}
}
