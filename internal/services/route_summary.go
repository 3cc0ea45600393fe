package services

import (
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/geo"
)

// SummarizeRoute annotates an ordered route with sequence numbers and
// distances for display. The implicit return leg to the depot is included
// in TotalKm but not in any stop's CumulativeKm.
func SummarizeRoute[T any](
	depot domain.Coordinates,
	route []domain.VisitPoint[T],
	dist geo.DistanceFunc,
) domain.RoutePlan[T] {
	if dist == nil {
		dist = geo.HaversineKm
	}

	plan := domain.RoutePlan[T]{
		Depot: depot,
		Stops: make([]domain.RouteStop[T], 0, len(route)),
	}
	if len(route) == 0 {
		return plan
	}

	current := depot
	cumulative := 0.0
	for i, p := range route {
		leg := dist(current, p.Coordinates)
		cumulative += leg

		plan.Stops = append(plan.Stops, domain.RouteStop[T]{
			Sequence:     i + 1,
			Point:        p,
			LegKm:        leg,
			CumulativeKm: cumulative,
		})
		current = p.Coordinates
	}

	plan.ReturnLegKm = dist(current, depot)
	plan.TotalKm = cumulative + plan.ReturnLegKm

	return plan
}
