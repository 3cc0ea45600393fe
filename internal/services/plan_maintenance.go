package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/geo"
	"maintenance-route-service/internal/platform/obs"
	"maintenance-route-service/internal/ports"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNoRoutableDevices is returned when the selection holds no device
// with usable coordinates.
var ErrNoRoutableDevices = errors.New("no devices with valid coordinates")

// DefaultPeriodDays is the stats window used by the maintenance map.
const DefaultPeriodDays = 14

type PlanMaintenanceRequest struct {
	Depot      domain.Coordinates
	DepotName  string
	PeriodDays int
	Filter     DeviceFilter
	BufferKm   float64
	Now        time.Time
}

// MaintenancePlanner builds suggested maintenance routes from a device source.
// Cache, Archive and Publisher are optional; their failures are logged and
// never fail a plan.
type MaintenancePlanner struct {
	Source    ports.DeviceSource
	Cache     ports.RouteCache
	Archive   ports.RouteArchive
	Publisher ports.RoutePublisher
	Distance  geo.DistanceFunc
	NewID     func() string
}

// Plan loads devices, narrows them to the request's selection, orders the
// routable ones from the depot and summarises the result for display.
func (p *MaintenancePlanner) Plan(
	ctx context.Context,
	req PlanMaintenanceRequest,
) (_ *ports.MaintenanceRoute, err error) {
	defer obs.Time(ctx, "maintenance.Plan")(&err)

	if p.Source == nil {
		return nil, errors.New("plan maintenance: device source is nil")
	}

	if !req.Depot.Valid() {
		return nil, fmt.Errorf("plan maintenance: depot (%v, %v): %w", req.Depot.Lat, req.Depot.Lon, ErrInvalidInput)
	}

	dist := p.Distance
	if dist == nil {
		dist = geo.HaversineKm
	}

	periodDays := req.PeriodDays
	if periodDays == 0 {
		periodDays = DefaultPeriodDays
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	devices, err := p.Source.ListDevices(ctx, periodDays)
	if err != nil {
		return nil, fmt.Errorf("plan maintenance: list devices: %w", err)
	}

	// The view (AirQloud + quick filter) is what the map shows; the
	// explicit id selection narrows it to the stops to route.
	view := DeviceFilter{AirQloud: req.Filter.AirQloud, Quick: req.Filter.Quick}.Apply(devices, now)
	selected := DeviceFilter{DeviceIDs: req.Filter.DeviceIDs}.Apply(view, now)

	points := make([]domain.VisitPoint[domain.Device], 0, len(selected))
	for _, d := range selected {
		vp := d.VisitPoint()
		if !vp.Coordinates.Valid() {
			continue
		}
		points = append(points, vp)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("plan maintenance: %d devices in view: %w", len(selected), ErrNoRoutableDevices)
	}

	bufferKm := req.BufferKm
	if bufferKm == 0 {
		bufferKm = DefaultSuggestionBufferKm
	}

	key := routeCacheKey(req.Depot, bufferKm, points, view)
	if p.Cache != nil {
		cached, ok, err := p.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("route cache read failed: key=%s err=%v", key, err)
		} else if ok {
			cached.Plan.DepotName = req.DepotName
			return cached, nil
		}
	}

	ordered, err := ComputeRouteWith(dist, req.Depot, points)
	if err != nil {
		return nil, fmt.Errorf("plan maintenance: compute route: %w", err)
	}

	plan := SummarizeRoute(req.Depot, ordered, dist)
	plan.DepotName = req.DepotName

	newID := p.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	route := &ports.MaintenanceRoute{
		RouteID:     newID(),
		ComputedAt:  now.UTC(),
		Plan:        plan,
		Suggestions: SuggestAlongRoute(ordered, view, bufferKm, dist),
	}

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, key, route); err != nil {
			log.Printf("route cache write failed: key=%s err=%v", key, err)
		}
	}

	p.notify(ctx, route)

	return route, nil
}

// notify archives and publishes the route concurrently.
func (p *MaintenancePlanner) notify(ctx context.Context, route *ports.MaintenanceRoute) {
	var wg sync.WaitGroup

	if p.Archive != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			objectKey, err := p.Archive.Store(ctx, route)
			if err != nil {
				log.Printf("route archive failed: route_id=%s err=%v", route.RouteID, err)
				return
			}
			log.Printf("route archived: route_id=%s key=%s", route.RouteID, objectKey)
		}()
	}

	if p.Publisher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Publisher.Publish(ctx, route); err != nil {
				log.Printf("route publish failed: route_id=%s err=%v", route.RouteID, err)
			}
		}()
	}

	wg.Wait()
}

// routeCacheKey identifies a plan by every input that can change it.
func routeCacheKey(
	depot domain.Coordinates,
	bufferKm float64,
	points []domain.VisitPoint[domain.Device],
	view []domain.Device,
) string {
	var b strings.Builder
	writeCoord := func(c domain.Coordinates) {
		b.WriteString(strconv.FormatFloat(c.Lat, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(c.Lon, 'g', -1, 64))
	}

	writeCoord(depot)
	b.WriteString("|buf=")
	b.WriteString(strconv.FormatFloat(bufferKm, 'g', -1, 64))
	b.WriteString("|route")
	for _, p := range points {
		b.WriteByte(';')
		b.WriteString(p.ID)
		b.WriteByte('@')
		writeCoord(p.Coordinates)
	}
	b.WriteString("|view")
	for _, d := range view {
		b.WriteByte(';')
		b.WriteString(d.DeviceID)
		b.WriteByte('@')
		writeCoord(d.VisitPoint().Coordinates)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return "route:" + hex.EncodeToString(sum[:])
}
