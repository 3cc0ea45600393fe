package dto

import (
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/ports"
	"time"
)

type DeviceResponse struct {
	DeviceID       string     `json:"device_id"`
	DeviceName     string     `json:"device_name"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	AirQlouds      []string   `json:"airqlouds"`
	AvgUptime      float64    `json:"avg_uptime"`
	AvgErrorMargin float64    `json:"avg_error_margin"`
	LastActive     *time.Time `json:"last_active"`
}

func NewDeviceResponse(d domain.Device) DeviceResponse {
	aqs := d.AirQlouds
	if aqs == nil {
		aqs = []string{}
	}
	return DeviceResponse{
		DeviceID:       d.DeviceID,
		DeviceName:     d.DeviceName,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		AirQlouds:      aqs,
		AvgUptime:      d.AvgUptime,
		AvgErrorMargin: d.AvgErrorMargin,
		LastActive:     d.LastActive,
	}
}

func NewDeviceResponses(devices []domain.Device) []DeviceResponse {
	out := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, NewDeviceResponse(d))
	}
	return out
}

type ListDevicesResponse struct {
	Devices   []DeviceResponse `json:"devices"`
	AirQlouds []string         `json:"airqlouds"`
}

type MaintenanceRouteRequest struct {
	Depot      *LocationRequest `json:"depot"`
	PeriodDays int              `json:"period_days"`
	AirQloud   string           `json:"airqloud"`
	Filter     string           `json:"filter"`
	DeviceIDs  []string         `json:"device_ids"`
	BufferKm   float64          `json:"buffer_km"`
}

type MaintenanceStopResponse struct {
	Sequence     int            `json:"sequence"`
	LegKm        float64        `json:"leg_km"`
	CumulativeKm float64        `json:"cumulative_km"`
	Device       DeviceResponse `json:"device"`
}

type MaintenanceRouteResponse struct {
	RouteID     string                    `json:"route_id"`
	ComputedAt  time.Time                 `json:"computed_at"`
	Depot       DepotResponse             `json:"depot"`
	Stops       []MaintenanceStopResponse `json:"stops"`
	ReturnLegKm float64                   `json:"return_leg_km"`
	TotalKm     float64                   `json:"total_km"`
	Suggestions []DeviceResponse          `json:"suggestions"`
}

func NewMaintenanceRouteResponse(r *ports.MaintenanceRoute) MaintenanceRouteResponse {
	res := MaintenanceRouteResponse{
		RouteID:    r.RouteID,
		ComputedAt: r.ComputedAt,
		Depot: DepotResponse{
			Latitude:  r.Plan.Depot.Lat,
			Longitude: r.Plan.Depot.Lon,
			Name:      r.Plan.DepotName,
		},
		Stops:       make([]MaintenanceStopResponse, 0, len(r.Plan.Stops)),
		ReturnLegKm: r.Plan.ReturnLegKm,
		TotalKm:     r.Plan.TotalKm,
		Suggestions: NewDeviceResponses(r.Suggestions),
	}

	for _, s := range r.Plan.Stops {
		res.Stops = append(res.Stops, MaintenanceStopResponse{
			Sequence:     s.Sequence,
			LegKm:        s.LegKm,
			CumulativeKm: s.CumulativeKm,
			Device:       NewDeviceResponse(s.Point.Meta),
		})
	}

	return res
}
