package ports

import (
	"context"
	"maintenance-route-service/internal/domain"
)

// Port: a boundary for retrieving maintenance map devices from a data source.
type DeviceSource interface {
	// Return all devices with stats aggregated over the last periodDays.
	ListDevices(ctx context.Context, periodDays int) ([]domain.Device, error)
}
