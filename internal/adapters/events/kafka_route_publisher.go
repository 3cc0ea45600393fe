package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maintenance-route-service/internal/platform/obs"
	"maintenance-route-service/internal/ports"
	"time"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
// It allows for easy mocking in unit tests.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// RouteComputedEvent is the payload published for every new route.
type RouteComputedEvent struct {
	RouteID    string    `json:"route_id"`
	ComputedAt time.Time `json:"computed_at"`
	DepotName  string    `json:"depot_name"`
	StopIDs    []string  `json:"stop_ids"`
	TotalKm    float64   `json:"total_km"`
	Suggested  []string  `json:"suggested_ids"`
}

// KafkaRoutePublisher publishes route.computed events keyed by route id.
type KafkaRoutePublisher struct {
	writer messageWriter
}

func NewKafkaRoutePublisher(broker, topic string) (*KafkaRoutePublisher, error) {
	if broker == "" || topic == "" {
		return nil, errors.New("route publisher: broker and topic are required")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &KafkaRoutePublisher{writer: w}, nil
}

// NewRouteComputedEvent flattens a route into its event payload.
func NewRouteComputedEvent(route *ports.MaintenanceRoute) RouteComputedEvent {
	ev := RouteComputedEvent{
		RouteID:    route.RouteID,
		ComputedAt: route.ComputedAt,
		DepotName:  route.Plan.DepotName,
		StopIDs:    make([]string, 0, len(route.Plan.Stops)),
		TotalKm:    route.Plan.TotalKm,
		Suggested:  make([]string, 0, len(route.Suggestions)),
	}
	for _, s := range route.Plan.Stops {
		ev.StopIDs = append(ev.StopIDs, s.Point.ID)
	}
	for _, d := range route.Suggestions {
		ev.Suggested = append(ev.Suggested, d.DeviceID)
	}
	return ev
}

func (p *KafkaRoutePublisher) Publish(ctx context.Context, route *ports.MaintenanceRoute) (err error) {
	defer obs.Time(ctx, "route.events.Publish")(&err)

	if route == nil {
		return errors.New("publish route: route is nil")
	}

	payload, err := json.Marshal(NewRouteComputedEvent(route))
	if err != nil {
		return fmt.Errorf("publish route: marshal route_id=%s: %w", route.RouteID, err)
	}

	msg := kafka.Message{
		Key:   []byte(route.RouteID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("route.computed")},
			{Key: "req_id", Value: []byte(obs.RequestID(ctx))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish route: write route_id=%s: %w", route.RouteID, err)
	}

	return nil
}

func (p *KafkaRoutePublisher) Close() error {
	return p.writer.Close()
}
