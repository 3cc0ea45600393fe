package cache

import (
	"context"
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRouteCache(client, time.Minute), mr
}

func sampleRoute() *ports.MaintenanceRoute {
	lat, lon := 0.34, 32.58
	dev := domain.Device{DeviceID: "aq_01", DeviceName: "Makerere", Latitude: &lat, Longitude: &lon, AirQlouds: []string{"Kampala"}}
	return &ports.MaintenanceRoute{
		RouteID:    "route-1",
		ComputedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Plan: domain.RoutePlan[domain.Device]{
			Depot:     domain.Coordinates{Lat: 0.332078, Lon: 32.570473},
			DepotName: "Head Office",
			Stops: []domain.RouteStop[domain.Device]{
				{Sequence: 1, Point: dev.VisitPoint(), LegKm: 1.2, CumulativeKm: 1.2},
			},
			ReturnLegKm: 1.2,
			TotalKm:     2.4,
		},
		Suggestions: []domain.Device{},
	}
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "route:abc")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Put(ctx, "route:abc", sampleRoute()))
	require.True(t, mr.Exists("maintenance:route:abc"))
	require.Equal(t, time.Minute, mr.TTL("maintenance:route:abc"))

	got, ok, err := c.Get(ctx, "route:abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sampleRoute(), got)
}

func TestRedisRouteCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", sampleRoute()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisRouteCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("maintenance:bad", "{not json"))

	_, _, err := c.Get(context.Background(), "bad")
	require.Error(t, err)
}

func TestRedisRouteCacheRejectsEmptyInput(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, _, err := c.Get(ctx, " ")
	require.Error(t, err)
	require.Error(t, c.Put(ctx, "", sampleRoute()))
	require.Error(t, c.Put(ctx, "k", nil))
}
