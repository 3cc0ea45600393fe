package repositories

import (
	"context"
	"maintenance-route-service/internal/platform/db"
	"os"
	"testing"
	"time"
)

// Runs against a real Postgres when TEST_DATABASE_URL is set.
func TestSQLDeviceRepositoryListDevices(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Open(ctx, url)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()

	if err := InitSchema(ctx, conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	if err := SeedFromJSON(ctx, conn, "../../../data/seeds/devices.json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	devices, err := NewSQLDeviceRepository(conn).ListDevices(ctx, 14)
	if err != nil {
		t.Fatalf("list devices: %v", err)
	}

	byID := make(map[string]int, len(devices))
	for i, d := range devices {
		byID[d.DeviceID] = i
	}

	makerere, ok := byID["aq_g5_01"]
	if !ok {
		t.Fatalf("seeded device aq_g5_01 missing from %d devices", len(devices))
	}
	d := devices[makerere]
	if d.Latitude == nil || d.Longitude == nil {
		t.Fatalf("aq_g5_01 lost its coordinates: %+v", d)
	}
	if d.AvgUptime != 92.4 || len(d.AirQlouds) != 1 || d.AirQlouds[0] != "Kampala" {
		t.Fatalf("aq_g5_01 = %+v; want uptime 92.4 in Kampala", d)
	}

	noGPS, ok := byID["aq_g5_09"]
	if !ok {
		t.Fatalf("seeded device aq_g5_09 missing")
	}
	if devices[noGPS].Latitude != nil {
		t.Fatalf("aq_g5_09 should have no coordinates, got %v", *devices[noGPS].Latitude)
	}
}

func TestSQLDeviceRepositoryRequiresDB(t *testing.T) {
	repo := &SQLDeviceRepository{}
	if _, err := repo.ListDevices(context.Background(), 14); err == nil {
		t.Fatalf("expected error for nil DB")
	}
}
