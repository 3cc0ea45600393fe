package geo

import (
	"maintenance-route-service/internal/domain"
	"math"
)

// Mean earth radius (IUGG).
const EarthRadiusKm = 6371.0088

// DistanceFunc returns a non-negative distance between two coordinates.
// Route ordering only depends on the relative order of its results.
type DistanceFunc func(a, b domain.Coordinates) float64

// HaversineKm returns the great-circle distance between a and b in kilometers.
func HaversineKm(a, b domain.Coordinates) float64 {
	if a == b {
		return 0
	}

	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lon) - radians(a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// Rounding can push h just outside [0, 1] for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// radians reduces deg into [-180, 180] first so huge finite inputs
// stay finite after conversion.
func radians(deg float64) float64 {
	return math.Remainder(deg, 360) * math.Pi / 180
}
