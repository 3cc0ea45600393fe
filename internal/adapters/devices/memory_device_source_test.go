package devices

import (
	"context"
	"maintenance-route-service/internal/domain"
	"testing"
)

func TestMemoryDeviceSourceReturnsCopy(t *testing.T) {
	src := NewMemoryDeviceSource([]domain.Device{{DeviceID: "a"}, {DeviceID: "b"}})

	got, err := src.ListDevices(context.Background(), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got[0].DeviceID = "changed"

	again, _ := src.ListDevices(context.Background(), 14)
	if again[0].DeviceID != "a" {
		t.Fatalf("source data mutated through returned slice: %q", again[0].DeviceID)
	}
	if src.Calls() != 2 {
		t.Fatalf("Calls() = %d; want 2", src.Calls())
	}
}

func TestMemoryDeviceSourceCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemoryDeviceSource(nil).ListDevices(ctx, 14); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}
