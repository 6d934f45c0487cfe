package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/felixgeelhaar/meetingctl/internal/shared/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	domain.BaseEvent
	Person string `json:"person"`
}

func newTestEvent(routingKey string) *testEvent {
	return &testEvent{
		BaseEvent: domain.NewBaseEvent(7, "Meeting", routingKey),
		Person:    "Bob",
	}
}

func TestInProcessEventBus_Publish(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	bus := eventbus.NewInProcessEventBus(newTestLogger(), metrics)

	consumer := &mockConsumer{eventTypes: []string{"meetings.attendee.added"}}
	bus.RegisterConsumer(consumer)

	event := newTestEvent("meetings.attendee.added")
	ctx := observability.WithCorrelationID(context.Background(), "corr-1")

	require.NoError(t, bus.Publish(ctx, event))

	require.Len(t, consumer.events, 1)
	got := consumer.events[0]
	assert.Equal(t, event.EventID(), got.EventID)
	assert.Equal(t, 7, got.AggregateID)
	assert.Equal(t, "Meeting", got.AggregateType)
	assert.Equal(t, "meetings.attendee.added", got.RoutingKey)
	assert.Equal(t, "corr-1", got.Metadata.CorrelationID)

	var payload struct {
		Person string `json:"person"`
	}
	require.NoError(t, json.Unmarshal(got.Payload, &payload))
	assert.Equal(t, "Bob", payload.Person)

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricDomainEvents,
		observability.T("routing_key", "meetings.attendee.added")))
}

func TestInProcessEventBus_MultipleConsumers(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(newTestLogger(), nil)

	consumer1 := &mockConsumer{eventTypes: []string{"meetings.meeting.created"}}
	consumer2 := &mockConsumer{eventTypes: []string{eventbus.AllEvents}}
	bus.RegisterConsumer(consumer1)
	bus.RegisterConsumer(consumer2)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("meetings.meeting.created")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("meetings.meeting.deleted")))

	assert.Len(t, consumer1.events, 1)
	assert.Len(t, consumer2.events, 2)
}

func TestInProcessEventBus_ConsumerErrorIsSwallowed(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(newTestLogger(), nil)

	consumer := &mockConsumer{
		eventTypes: []string{"meetings.meeting.created"},
		err:        errors.New("consumer error"),
	}
	bus.RegisterConsumer(consumer)

	err := bus.Publish(context.Background(), newTestEvent("meetings.meeting.created"))

	require.NoError(t, err)
	assert.Len(t, consumer.events, 1)
}

func TestInProcessEventBus_NoConsumers(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(newTestLogger(), nil)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("meetings.meeting.created")))
	assert.NoError(t, bus.Close())
	assert.NotNil(t, bus.GetRegistry())
}

func TestConsumerFunc(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(newTestLogger(), nil)

	var keys []string
	bus.RegisterConsumer(eventbus.ConsumerFunc{
		Types: []string{eventbus.AllEvents},
		Fn: func(ctx context.Context, event *eventbus.ConsumedEvent) error {
			keys = append(keys, event.RoutingKey)
			return nil
		},
	})

	events := []domain.DomainEvent{
		newTestEvent("meetings.meeting.created"),
		newTestEvent("meetings.attendee.added"),
	}
	require.NoError(t, eventbus.PublishAll(context.Background(), bus, events))

	assert.Equal(t, []string{"meetings.meeting.created", "meetings.attendee.added"}, keys)
}
