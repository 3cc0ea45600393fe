package services

import (
	"fmt"
	"maintenance-route-service/internal/domain"
	"slices"
	"strings"
	"time"
)

// QuickFilter narrows the maintenance map to devices needing attention.
type QuickFilter string

const (
	FilterAll      QuickFilter = "all"
	FilterCritical QuickFilter = "critical"
	FilterBattery  QuickFilter = "battery"
	FilterOffline  QuickFilter = "offline"
)

const (
	criticalUptimeBelow      = 70.0
	criticalErrorMarginAbove = 20.0
	criticalInactiveAfter    = 24 * time.Hour
	offlineInactiveAfter     = 7 * 24 * time.Hour
)

// ParseQuickFilter accepts the quick filter names case-insensitively.
// An empty string means FilterAll.
func ParseQuickFilter(s string) (QuickFilter, error) {
	switch f := QuickFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCritical, FilterBattery, FilterOffline:
		return f, nil
	default:
		return "", fmt.Errorf("parse quick filter %q: %w", s, ErrInvalidInput)
	}
}

// DeviceFilter is the active map-view selection.
type DeviceFilter struct {
	AirQloud  string
	Quick     QuickFilter
	DeviceIDs []string
}

// Apply returns the devices matching f, in input order.
func (f DeviceFilter) Apply(devices []domain.Device, now time.Time) []domain.Device {
	var selected map[string]struct{}
	if len(f.DeviceIDs) > 0 {
		selected = make(map[string]struct{}, len(f.DeviceIDs))
		for _, id := range f.DeviceIDs {
			selected[id] = struct{}{}
		}
	}

	aq := strings.TrimSpace(f.AirQloud)
	if strings.EqualFold(aq, "all") {
		aq = ""
	}

	out := make([]domain.Device, 0, len(devices))
	for _, d := range devices {
		if selected != nil {
			if _, ok := selected[d.DeviceID]; !ok {
				continue
			}
		}
		if aq != "" && !d.InAirQloud(aq) {
			continue
		}
		if !f.Quick.Matches(d, now) {
			continue
		}
		out = append(out, d)
	}

	return out
}

// Matches reports whether d passes the quick filter.
// Battery data is not reported by devices yet, so FilterBattery matches nothing.
func (q QuickFilter) Matches(d domain.Device, now time.Time) bool {
	switch q {
	case "", FilterAll:
		return true
	case FilterCritical:
		if d.AvgUptime < criticalUptimeBelow || d.AvgErrorMargin > criticalErrorMarginAbove {
			return true
		}
		inactive, ok := d.InactiveFor(now)
		return ok && inactive > criticalInactiveAfter
	case FilterOffline:
		inactive, ok := d.InactiveFor(now)
		return ok && inactive > offlineInactiveAfter
	case FilterBattery:
		return false
	default:
		return true
	}
}

// UniqueAirQlouds returns the sorted set of AirQlouds referenced by devices.
func UniqueAirQlouds(devices []domain.Device) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, d := range devices {
		for _, aq := range d.AirQlouds {
			if _, ok := seen[aq]; ok {
				continue
			}
			seen[aq] = struct{}{}
			out = append(out, aq)
		}
	}
	slices.Sort(out)
	return out
}
