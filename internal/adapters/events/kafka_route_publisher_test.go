package events

import (
	"context"
	"encoding/json"
	"errors"
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/platform/obs"
	"maintenance-route-service/internal/ports"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

// MockWriter is a mock implementation of messageWriter for testing.
type MockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *MockWriter) Close() error {
	m.closed = true
	return nil
}

func testRoute() *ports.MaintenanceRoute {
	return &ports.MaintenanceRoute{
		RouteID:    "route-42",
		ComputedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Plan: domain.RoutePlan[domain.Device]{
			DepotName: "Head Office",
			Stops: []domain.RouteStop[domain.Device]{
				{Sequence: 1, Point: domain.VisitPoint[domain.Device]{ID: "aq_02"}},
				{Sequence: 2, Point: domain.VisitPoint[domain.Device]{ID: "aq_01"}},
			},
			TotalKm: 12.5,
		},
		Suggestions: []domain.Device{{DeviceID: "aq_07"}},
	}
}

func TestKafkaRoutePublisherPublish(t *testing.T) {
	w := &MockWriter{}
	p := &KafkaRoutePublisher{writer: w}

	ctx := obs.WithRequestID(context.Background(), "req-9")
	require.NoError(t, p.Publish(ctx, testRoute()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	require.Equal(t, "route-42", string(msg.Key))
	require.Equal(t, []kafka.Header{
		{Key: "event_type", Value: []byte("route.computed")},
		{Key: "req_id", Value: []byte("req-9")},
	}, msg.Headers)

	var ev RouteComputedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	require.Equal(t, []string{"aq_02", "aq_01"}, ev.StopIDs)
	require.Equal(t, []string{"aq_07"}, ev.Suggested)
	require.Equal(t, 12.5, ev.TotalKm)
	require.Equal(t, "Head Office", ev.DepotName)

	require.NoError(t, p.Close())
	require.True(t, w.closed)
}

func TestKafkaRoutePublisherErrors(t *testing.T) {
	p := &KafkaRoutePublisher{writer: &MockWriter{err: errors.New("leader not available")}}

	require.ErrorContains(t, p.Publish(context.Background(), testRoute()), "leader not available")
	require.Error(t, p.Publish(context.Background(), nil))
}

func TestNewKafkaRoutePublisherValidates(t *testing.T) {
	_, err := NewKafkaRoutePublisher("", "topic")
	require.Error(t, err)

	p, err := NewKafkaRoutePublisher("localhost:9092", "maintenance.route.computed")
	require.NoError(t, err)
	require.NoError(t, p.Close())
}
