package domain

// Represents a single stop in a maintenance route.
// Sequence is 1-based; LegKm is the distance from the previous stop
// (or the depot for the first stop).
type RouteStop[T any] struct {
	Sequence     int           `json:"sequence"`
	Point        VisitPoint[T] `json:"point"`
	LegKm        float64       `json:"leg_km"`
	CumulativeKm float64       `json:"cumulative_km"`
}

// Represents the planned round trip for a maintenance team.
// The depot is implicit at both ends and never appears in Stops.
// TotalKm includes ReturnLegKm.
type RoutePlan[T any] struct {
	Depot       Coordinates    `json:"depot"`
	DepotName   string         `json:"depot_name"`
	Stops       []RouteStop[T] `json:"stops"`
	ReturnLegKm float64        `json:"return_leg_km"`
	TotalKm     float64        `json:"total_km"`
}

// Points returns the stops' visit points in route order.
func (p RoutePlan[T]) Points() []VisitPoint[T] {
	out := make([]VisitPoint[T], 0, len(p.Stops))
	for _, s := range p.Stops {
		out = append(out, s.Point)
	}
	return out
}
