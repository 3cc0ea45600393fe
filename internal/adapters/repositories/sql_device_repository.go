package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/platform/obs"

	"github.com/jackc/pgx/v5/pgtype"
)

// PostgreSQL-backed implementation of the DeviceSource port.
type SQLDeviceRepository struct {
	DB      *sql.DB
	typeMap *pgtype.Map
}

func NewSQLDeviceRepository(db *sql.DB) *SQLDeviceRepository {
	return &SQLDeviceRepository{DB: db, typeMap: pgtype.NewMap()}
}

// Return all devices with uptime and error margin averaged over the
// last periodDays days. Devices without stats report zero averages.
func (s *SQLDeviceRepository) ListDevices(ctx context.Context, periodDays int) (_ []domain.Device, err error) {
	defer obs.Time(ctx, "devices.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql device repository: DB is nil")
	}

	if periodDays < 1 {
		return nil, fmt.Errorf("list devices: period_days must be positive, got %d", periodDays)
	}

	query := `
	SELECT
		d.device_id,
		d.device_name,
		d.latitude,
		d.longitude,
		d.airqlouds,
		d.last_active,
		COALESCE(AVG(s.uptime), 0),
		COALESCE(AVG(s.error_margin), 0)
	FROM devices d
	LEFT JOIN device_daily_stats s
		ON s.device_id = d.device_id
		AND s.day > CURRENT_DATE - $1::int
	GROUP BY d.device_id
	ORDER BY d.device_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, periodDays)
	if err != nil {
		return nil, fmt.Errorf("list devices: query devices table: %w", err)
	}
	defer rows.Close()

	devices := make([]domain.Device, 0, 64)
	for rows.Next() {
		var (
			d          domain.Device
			lat, lon   sql.NullFloat64
			lastActive sql.NullTime
			airqlouds  []string
		)
		if err := rows.Scan(
			&d.DeviceID,
			&d.DeviceName,
			&lat,
			&lon,
			s.typeMap.SQLScanner(&airqlouds),
			&lastActive,
			&d.AvgUptime,
			&d.AvgErrorMargin,
		); err != nil {
			return nil, fmt.Errorf("list devices: scan row: %w", err)
		}

		if lat.Valid && lon.Valid {
			d.Latitude = &lat.Float64
			d.Longitude = &lon.Float64
		}
		if lastActive.Valid {
			t := lastActive.Time
			d.LastActive = &t
		}
		if airqlouds == nil {
			airqlouds = []string{}
		}
		d.AirQlouds = airqlouds

		devices = append(devices, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list devices: row iteration: %w", err)
	}

	return devices, nil
}
