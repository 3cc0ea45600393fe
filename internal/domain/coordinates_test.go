package domain

import (
	"math"
	"testing"
)

func TestCoordinatesValid(t *testing.T) {
	cases := []struct {
		name  string
		in    Coordinates
		valid bool
	}{
		{"head office", Coordinates{Lat: 0.332078, Lon: 32.570473}, true},
		{"origin", Coordinates{}, true},
		{"nan lat", Coordinates{Lat: math.NaN(), Lon: 1}, false},
		{"nan lon", Coordinates{Lat: 1, Lon: math.NaN()}, false},
		{"inf lat", Coordinates{Lat: math.Inf(1), Lon: 1}, false},
		{"neg inf lon", Coordinates{Lat: 1, Lon: math.Inf(-1)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Valid(); got != tc.valid {
				t.Fatalf("Valid(%v) = %v; want %v", tc.in, got, tc.valid)
			}
		})
	}
}

func TestCoordsToList(t *testing.T) {
	got := Coordinates{Lat: 1.5, Lon: 32.5}.CoordsToList()
	if len(got) != 2 || got[0] != 32.5 || got[1] != 1.5 {
		t.Fatalf("CoordsToList = %v; want [32.5 1.5]", got)
	}
}
