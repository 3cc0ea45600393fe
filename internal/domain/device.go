package domain

import (
	"math"
	"time"
)

// Device is a monitoring device as shown on the maintenance map.
// Latitude and Longitude are optional upstream; a device without
// coordinates can be listed but never routed.
type Device struct {
	DeviceID       string     `json:"device_id"`
	DeviceName     string     `json:"device_name"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	AirQlouds      []string   `json:"airqlouds"`
	AvgUptime      float64    `json:"avg_uptime"`
	AvgErrorMargin float64    `json:"avg_error_margin"`
	LastActive     *time.Time `json:"last_active"`
}

// InAirQloud reports whether the device belongs to the named AirQloud.
func (d Device) InAirQloud(name string) bool {
	for _, aq := range d.AirQlouds {
		if aq == name {
			return true
		}
	}
	return false
}

// InactiveFor returns how long the device has been silent as of now.
// Devices that never reported return ok=false.
func (d Device) InactiveFor(now time.Time) (time.Duration, bool) {
	if d.LastActive == nil {
		return 0, false
	}
	return now.Sub(*d.LastActive), true
}

// VisitPoint adapts the device for routing. Missing coordinates become
// NaN so the sequencer drops the device instead of routing it to (0,0).
func (d Device) VisitPoint() VisitPoint[Device] {
	lat, lon := math.NaN(), math.NaN()
	if d.Latitude != nil {
		lat = *d.Latitude
	}
	if d.Longitude != nil {
		lon = *d.Longitude
	}
	return NewVisitPoint(d.DeviceID, lat, lon, d)
}
