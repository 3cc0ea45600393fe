package services

import (
	"maintenance-route-service/internal/domain"
	"math"
	"testing"
)

// manhattan keeps expected values exact.
func manhattan(a, b domain.Coordinates) float64 {
	return math.Abs(a.Lat-b.Lat) + math.Abs(a.Lon-b.Lon)
}

func TestSummarizeRoute(t *testing.T) {
	route := []domain.VisitPoint[deviceMeta]{vp("A", 0, 1), vp("B", 0, 3), vp("C", 2, 3)}

	plan := SummarizeRoute(origin, route, manhattan)

	if len(plan.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(plan.Stops))
	}

	wantLegs := []float64{1, 2, 2}
	wantCum := []float64{1, 3, 5}
	for i, s := range plan.Stops {
		if s.Sequence != i+1 {
			t.Fatalf("stop %d sequence = %d; want %d", i, s.Sequence, i+1)
		}
		if s.LegKm != wantLegs[i] {
			t.Fatalf("stop %d leg = %v; want %v", i, s.LegKm, wantLegs[i])
		}
		if s.CumulativeKm != wantCum[i] {
			t.Fatalf("stop %d cumulative = %v; want %v", i, s.CumulativeKm, wantCum[i])
		}
		if s.Point != route[i] {
			t.Fatalf("stop %d point = %v; want %v", i, s.Point, route[i])
		}
	}

	if plan.ReturnLegKm != 5 {
		t.Fatalf("return leg = %v; want 5", plan.ReturnLegKm)
	}
	if plan.TotalKm != 10 {
		t.Fatalf("total = %v; want 10", plan.TotalKm)
	}
	if got := ids(plan.Points()); got[0] != "A" || got[2] != "C" {
		t.Fatalf("Points() = %v", got)
	}
}

func TestSummarizeEmptyRoute(t *testing.T) {
	plan := SummarizeRoute[deviceMeta](origin, nil, nil)
	if len(plan.Stops) != 0 || plan.TotalKm != 0 || plan.ReturnLegKm != 0 {
		t.Fatalf("plan = %+v; want zero totals", plan)
	}
	if plan.Depot != origin {
		t.Fatalf("depot = %v; want %v", plan.Depot, origin)
	}
}

func TestSummarizeRouteDefaultsToHaversine(t *testing.T) {
	plan := SummarizeRoute(origin, []domain.VisitPoint[deviceMeta]{vp("A", 0, 1)}, nil)
	if math.Abs(plan.TotalKm-2*111.195) > 0.01 {
		t.Fatalf("total = %v; want about 222.39 km", plan.TotalKm)
	}
}
