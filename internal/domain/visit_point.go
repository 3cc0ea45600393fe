package domain

// VisitPoint is a single candidate stop for a route.
//
// Routing only ever reads ID and Coordinates. Meta is the caller's payload
// and is carried through untouched.
type VisitPoint[T any] struct {
	ID          string      `json:"id"`
	Coordinates Coordinates `json:"coordinates"`
	Meta        T           `json:"meta"`
}

func NewVisitPoint[T any](id string, lat, lon float64, meta T) VisitPoint[T] {
	return VisitPoint[T]{
		ID:          id,
		Coordinates: Coordinates{Lat: lat, Lon: lon},
		Meta:        meta,
	}
}
