package geo

import (
	"errors"
	"math"
	"testing"

	"ordertrack/internal/types"
)

func TestDecodePolyline_ReferenceExample(t *testing.T) {
	got, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []types.Point{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i], 1e-5) {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEncodeDecode_PreservesFiveDecimals(t *testing.T) {
	path := []types.Point{
		{Lat: 12.97194, Lng: 77.59369},
		{Lat: 12.97501, Lng: 77.60122},
		{Lat: 12.98012, Lng: 77.64003},
	}
	got, err := DecodePolyline(EncodePolyline(path))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range path {
		if math.Abs(got[i].Lat-path[i].Lat) > 1e-5 || math.Abs(got[i].Lng-path[i].Lng) > 1e-5 {
			t.Errorf("point %d = %+v, want %+v", i, got[i], path[i])
		}
	}
}

func TestDecodePolyline_Malformed(t *testing.T) {
	for _, in := range []string{"", "_"} {
		if _, err := DecodePolyline(in); !errors.Is(err, ErrMalformedPolyline) {
			t.Errorf("DecodePolyline(%q) err = %v, want ErrMalformedPolyline", in, err)
		}
	}
}
