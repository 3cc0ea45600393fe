package services

import (
	"errors"
	"fmt"
	"log"
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/geo"
	"math"
	"slices"
)

// ErrInvalidInput is returned when the depot cannot serve as a starting point.
var ErrInvalidInput = errors.New("invalid input")

// ComputeRoute orders points into a suggested visiting sequence starting
// from depot, using great-circle distances. See ComputeRouteWith.
func ComputeRoute[T any](
	depot domain.Coordinates,
	points []domain.VisitPoint[T],
) ([]domain.VisitPoint[T], error) {
	return ComputeRouteWith(geo.HaversineKm, depot, points)
}

// ComputeRouteWith orders points using a greedy nearest-neighbor algorithm.
//
// From the current location (initially the depot) the closest unvisited
// point is visited next. Equidistant candidates resolve to the one that
// appears first in points. The depot is never part of the result.
//
// Points with non-finite coordinates are skipped. The result holds every
// remaining point exactly once and is never nil.
func ComputeRouteWith[T any](
	dist geo.DistanceFunc,
	depot domain.Coordinates,
	points []domain.VisitPoint[T],
) ([]domain.VisitPoint[T], error) {
	if dist == nil {
		return nil, fmt.Errorf("compute route: distance func is nil: %w", ErrInvalidInput)
	}

	if !depot.Valid() {
		return nil, fmt.Errorf(
			"compute route: depot has non-finite coordinates (%v, %v): %w",
			depot.Lat, depot.Lon, ErrInvalidInput,
		)
	}

	// Indices into points, kept in input order so the scan below
	// breaks ties by input position.
	remaining := make([]int, 0, len(points))
	for i, p := range points {
		if !p.Coordinates.Valid() {
			log.Printf("compute route: warn skipping point id=%q lat=%v lon=%v: non-finite coordinates",
				p.ID, p.Coordinates.Lat, p.Coordinates.Lon)
			continue
		}
		remaining = append(remaining, i)
	}

	route := make([]domain.VisitPoint[T], 0, len(remaining))
	current := depot

	for len(remaining) > 0 {
		bestPos := -1
		bestDist := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		for pos, idx := range remaining {
			d := dist(current, points[idx].Coordinates)
			if math.IsNaN(d) {
				d = math.Inf(1)
			}
			if bestPos == -1 || d < bestDist {
				bestPos = pos
				bestDist = d
			}
		}

		next := points[remaining[bestPos]]
		route = append(route, next)
		remaining = slices.Delete(remaining, bestPos, bestPos+1)
		current = next.Coordinates
	}

	return route, nil
}
