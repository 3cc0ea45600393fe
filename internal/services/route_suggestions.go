package services

import (
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/geo"
)

// DefaultSuggestionBufferKm is how far off the route a device may be
// and still be suggested as an extra stop.
const DefaultSuggestionBufferKm = 10.0

// SuggestAlongRoute returns candidates that are not already on the route
// but lie within bufferKm of at least one stop. Candidates keep their
// input order; those without coordinates are ignored.
func SuggestAlongRoute(
	route []domain.VisitPoint[domain.Device],
	candidates []domain.Device,
	bufferKm float64,
	dist geo.DistanceFunc,
) []domain.Device {
	out := make([]domain.Device, 0)
	if len(route) == 0 || bufferKm <= 0 {
		return out
	}
	if dist == nil {
		dist = geo.HaversineKm
	}

	onRoute := make(map[string]struct{}, len(route))
	for _, p := range route {
		onRoute[p.ID] = struct{}{}
	}

	for _, d := range candidates {
		if _, ok := onRoute[d.DeviceID]; ok {
			continue
		}

		c := d.VisitPoint().Coordinates
		if !c.Valid() {
			continue
		}

		for _, p := range route {
			if dist(c, p.Coordinates) <= bufferKm {
				out = append(out, d)
				break
			}
		}
	}

	return out
}
