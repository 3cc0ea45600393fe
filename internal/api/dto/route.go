package dto

import (
	"encoding/json"
	"maintenance-route-service/internal/domain"
	"math"
)

// LocationRequest is a JSON coordinate pair. Null or missing values decode
// to NaN so they fail validation instead of silently becoming 0.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Name      string   `json:"name,omitempty"`
}

func (l LocationRequest) Coordinates() domain.Coordinates {
	c := domain.Coordinates{Lat: math.NaN(), Lon: math.NaN()}
	if l.Latitude != nil {
		c.Lat = *l.Latitude
	}
	if l.Longitude != nil {
		c.Lon = *l.Longitude
	}
	return c
}

type RoutePointRequest struct {
	ID        string          `json:"id"`
	Latitude  *float64        `json:"latitude"`
	Longitude *float64        `json:"longitude"`
	Meta      json.RawMessage `json:"meta,omitempty"`
}

func (p RoutePointRequest) VisitPoint() domain.VisitPoint[json.RawMessage] {
	c := LocationRequest{Latitude: p.Latitude, Longitude: p.Longitude}.Coordinates()
	return domain.NewVisitPoint(p.ID, c.Lat, c.Lon, p.Meta)
}

type ComputeRouteRequest struct {
	Depot  *LocationRequest    `json:"depot"`
	Points []RoutePointRequest `json:"points"`
}

type DepotResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
}

type RouteStopResponse struct {
	Sequence     int             `json:"sequence"`
	ID           string          `json:"id"`
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	LegKm        float64         `json:"leg_km"`
	CumulativeKm float64         `json:"cumulative_km"`
	Meta         json.RawMessage `json:"meta,omitempty"`
}

type ComputeRouteResponse struct {
	Depot       DepotResponse       `json:"depot"`
	Stops       []RouteStopResponse `json:"stops"`
	ReturnLegKm float64             `json:"return_leg_km"`
	TotalKm     float64             `json:"total_km"`
	SkippedIDs  []string            `json:"skipped_ids"`
}

// NewComputeRouteResponse renders a plan over caller-supplied points.
func NewComputeRouteResponse(plan domain.RoutePlan[json.RawMessage], skipped []string) ComputeRouteResponse {
	res := ComputeRouteResponse{
		Depot: DepotResponse{
			Latitude:  plan.Depot.Lat,
			Longitude: plan.Depot.Lon,
			Name:      plan.DepotName,
		},
		Stops:       make([]RouteStopResponse, 0, len(plan.Stops)),
		ReturnLegKm: plan.ReturnLegKm,
		TotalKm:     plan.TotalKm,
		SkippedIDs:  skipped,
	}
	if res.SkippedIDs == nil {
		res.SkippedIDs = []string{}
	}

	for _, s := range plan.Stops {
		res.Stops = append(res.Stops, RouteStopResponse{
			Sequence:     s.Sequence,
			ID:           s.Point.ID,
			Latitude:     s.Point.Coordinates.Lat,
			Longitude:    s.Point.Coordinates.Lon,
			LegKm:        s.LegKm,
			CumulativeKm: s.CumulativeKm,
			Meta:         s.Point.Meta,
		})
	}

	return res
}
