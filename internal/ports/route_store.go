package ports

import (
	"context"
	"maintenance-route-service/internal/domain"
	"time"
)

// MaintenanceRoute is a computed route as stored, cached and published.
type MaintenanceRoute struct {
	RouteID     string                          `json:"route_id"`
	ComputedAt  time.Time                       `json:"computed_at"`
	Plan        domain.RoutePlan[domain.Device] `json:"plan"`
	Suggestions []domain.Device                 `json:"suggestions"`
}

// Optional cache for computed routes keyed by their inputs.
type RouteCache interface {
	// Get returns ok=false with a nil error on a miss.
	Get(ctx context.Context, key string) (route *MaintenanceRoute, ok bool, err error)
	Put(ctx context.Context, key string, route *MaintenanceRoute) error
}

// Optional long-term storage for computed routes.
type RouteArchive interface {
	// Store persists the route and returns the object key it was written under.
	Store(ctx context.Context, route *MaintenanceRoute) (string, error)
}

// Optional notification sink for computed routes.
type RoutePublisher interface {
	Publish(ctx context.Context, route *MaintenanceRoute) error
}
