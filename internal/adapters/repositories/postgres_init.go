package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maintenance-route-service/internal/domain"
	"math"
	"os"
	"strings"
	"time"
)

// Initialize the PostgreSQL database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDevicesQuery := `
	CREATE TABLE IF NOT EXISTS devices (
		device_id TEXT PRIMARY KEY,
		device_name TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		airqlouds TEXT[] NOT NULL DEFAULT '{}',
		last_active TIMESTAMPTZ
	);
	`

	createDeviceStatsQuery := `
	CREATE TABLE IF NOT EXISTS device_daily_stats (
		device_id TEXT NOT NULL REFERENCES devices(device_id) ON DELETE CASCADE,
		day DATE NOT NULL,
		uptime DOUBLE PRECISION NOT NULL,
		error_margin DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (device_id, day)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_device_daily_stats_day
	ON device_daily_stats(day);
	`

	statements := []string{
		createDevicesQuery,
		createDeviceStatsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// parseDeviceSeeds decodes and validates a JSON array of devices.
func parseDeviceSeeds(data []byte) ([]domain.Device, error) {
	var devices []domain.Device
	if err := json.Unmarshal(data, &devices); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	seen := make(map[string]struct{}, len(devices))
	for i := range devices {
		d := &devices[i]
		d.DeviceID = strings.TrimSpace(d.DeviceID)
		if d.DeviceID == "" {
			return nil, fmt.Errorf("item at index %d: device_id cannot be empty", i+1)
		}
		if _, ok := seen[d.DeviceID]; ok {
			return nil, fmt.Errorf("item at index %d: duplicate device_id %q", i+1, d.DeviceID)
		}
		seen[d.DeviceID] = struct{}{}

		if (d.Latitude == nil) != (d.Longitude == nil) {
			return nil, fmt.Errorf("item at index %d: latitude and longitude must be set together", i+1)
		}
		if d.Latitude != nil && (math.Abs(*d.Latitude) > 90 || math.Abs(*d.Longitude) > 180) {
			return nil, fmt.Errorf("item at index %d: coordinates (%v, %v) out of range", i+1, *d.Latitude, *d.Longitude)
		}
		if d.AirQlouds == nil {
			d.AirQlouds = []string{}
		}
	}

	return devices, nil
}

// LoadDeviceSeeds reads and validates the device seed file without
// touching a database.
func LoadDeviceSeeds(jsonPath string) ([]domain.Device, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load device seeds: read %q: %w", jsonPath, err)
	}

	devices, err := parseDeviceSeeds(data)
	if err != nil {
		return nil, fmt.Errorf("load device seeds: %w", err)
	}

	return devices, nil
}

// Populate the database with device data from a JSON file. Each device's
// averages are stored as a single stats row for today.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	devices, err := LoadDeviceSeeds(jsonPath)
	if err != nil {
		return fmt.Errorf("seed devices: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed devices: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deviceStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO devices (device_id, device_name, latitude, longitude, airqlouds, last_active)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (device_id) DO UPDATE
	SET device_name = EXCLUDED.device_name,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		airqlouds = EXCLUDED.airqlouds,
		last_active = EXCLUDED.last_active;
	`)
	if err != nil {
		return fmt.Errorf("seed devices: prepare device insert: %w", err)
	}
	defer deviceStmt.Close()

	statsStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO device_daily_stats (device_id, day, uptime, error_margin)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (device_id, day) DO UPDATE
	SET uptime = EXCLUDED.uptime,
		error_margin = EXCLUDED.error_margin;
	`)
	if err != nil {
		return fmt.Errorf("seed devices: prepare stats insert: %w", err)
	}
	defer statsStmt.Close()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, d := range devices {
		if _, err := deviceStmt.ExecContext(ctx,
			d.DeviceID, d.DeviceName, d.Latitude, d.Longitude, d.AirQlouds, d.LastActive,
		); err != nil {
			return fmt.Errorf("seed devices: insert device_id=%q: %w", d.DeviceID, err)
		}

		if _, err := statsStmt.ExecContext(ctx, d.DeviceID, today, d.AvgUptime, d.AvgErrorMargin); err != nil {
			return fmt.Errorf("seed devices: insert stats device_id=%q: %w", d.DeviceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed devices: commit tx: %w", err)
	}

	return nil
}
