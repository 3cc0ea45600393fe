package geo

import (
	"maintenance-route-service/internal/domain"
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	cases := []struct {
		name string
		a, b domain.Coordinates
		want float64
		tol  float64
	}{
		{"same point", domain.Coordinates{Lat: 0.332078, Lon: 32.570473}, domain.Coordinates{Lat: 0.332078, Lon: 32.570473}, 0, 0},
		{"one degree of longitude at equator", domain.Coordinates{}, domain.Coordinates{Lon: 1}, 111.195, 0.01},
		{"one degree of latitude", domain.Coordinates{}, domain.Coordinates{Lat: 1}, 111.195, 0.01},
		{"antipodal", domain.Coordinates{}, domain.Coordinates{Lon: 180}, math.Pi * EarthRadiusKm, 0.001},
		// Kampala to Entebbe is roughly 35 km as the crow flies.
		{"kampala to entebbe", domain.Coordinates{Lat: 0.3476, Lon: 32.5825}, domain.Coordinates{Lat: 0.0512, Lon: 32.4637}, 35.5, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.a, tc.b)
			if math.Abs(got-tc.want) > tc.tol {
				t.Fatalf("HaversineKm(%v, %v) = %.4f; want %.4f±%.4f", tc.a, tc.b, got, tc.want, tc.tol)
			}
		})
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	pairs := [][2]domain.Coordinates{
		{{Lat: 0.33, Lon: 32.57}, {Lat: 1.2, Lon: 33.1}},
		{{Lat: -45, Lon: 170}, {Lat: 60, Lon: -10}},
		{{Lat: 89.9, Lon: 0}, {Lat: -89.9, Lon: 180}},
	}

	for _, p := range pairs {
		ab := HaversineKm(p[0], p[1])
		ba := HaversineKm(p[1], p[0])
		if ab != ba {
			t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 || math.IsNaN(ab) {
			t.Fatalf("distance must be a non-negative number, got %v", ab)
		}
	}
}

func TestHaversineKmExtremeFiniteInputs(t *testing.T) {
	huge := math.MaxFloat64
	pairs := [][2]domain.Coordinates{
		{{}, {Lat: 1e308}},
		{{Lat: -1e308, Lon: 1e308}, {Lat: 1e308, Lon: -1e308}},
		{{Lat: huge, Lon: huge}, {Lat: -huge, Lon: -huge}},
		{{Lat: 0.33, Lon: 32.57}, {Lat: 720.33, Lon: -327.43}},
	}

	for _, p := range pairs {
		d := HaversineKm(p[0], p[1])
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 || d > math.Pi*EarthRadiusKm+1e-9 {
			t.Fatalf("HaversineKm(%v, %v) = %v; want a finite distance in [0, pi*R]", p[0], p[1], d)
		}
		if back := HaversineKm(p[1], p[0]); back != d {
			t.Fatalf("distance not symmetric at extremes: %v vs %v", d, back)
		}
	}

	// Whole turns of latitude or longitude land on the same place.
	if d := HaversineKm(domain.Coordinates{Lat: 0.33, Lon: 32.57}, domain.Coordinates{Lat: 720.33, Lon: -327.43}); d > 1e-6 {
		t.Fatalf("equivalent coordinates are %v km apart; want 0", d)
	}
}
