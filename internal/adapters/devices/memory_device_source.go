package devices

import (
	"context"
	"maintenance-route-service/internal/domain"
	"sync"
)

// MemoryDeviceSource serves a fixed device list. It is used by tests and
// by the server when no database or upstream API is configured.
type MemoryDeviceSource struct {
	mu      sync.RWMutex
	devices []domain.Device
	calls   int
}

func NewMemoryDeviceSource(devices []domain.Device) *MemoryDeviceSource {
	return &MemoryDeviceSource{devices: devices}
}

func (m *MemoryDeviceSource) ListDevices(ctx context.Context, periodDays int) ([]domain.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	out := make([]domain.Device, len(m.devices))
	copy(out, m.devices)
	return out, nil
}

// Calls returns how many times ListDevices was invoked.
func (m *MemoryDeviceSource) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}
