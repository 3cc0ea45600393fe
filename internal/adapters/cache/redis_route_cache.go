package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maintenance-route-service/internal/platform/obs"
	"maintenance-route-service/internal/ports"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache is a Redis-backed cache for computed maintenance routes.
// Routes are stored as JSON and expire after TTL.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl, Prefix: "maintenance:"}
}

func (c *RedisRouteCache) key(k string) string {
	return c.Prefix + k
}

// Fetch a cached route. A miss returns ok=false and a nil error.
func (c *RedisRouteCache) Get(
	ctx context.Context,
	key string,
) (_ *ports.MaintenanceRoute, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("route cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	raw, err := c.Client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}

	var route ports.MaintenanceRoute
	if err := json.Unmarshal(raw, &route); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode %q: %w", key, err)
	}

	return &route, true, nil
}

// Store a computed route under key.
func (c *RedisRouteCache) Put(ctx context.Context, key string, route *ports.MaintenanceRoute) error {
	if c.Client == nil {
		return errors.New("route cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("put route cache: key must not be empty")
	}

	if route == nil {
		return errors.New("put route cache: route is nil")
	}

	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode route_id=%s: %w", route.RouteID, err)
	}

	if err := c.Client.Set(ctx, c.key(key), payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("put route cache: set %q: %w", key, err)
	}

	return nil
}
