package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AllEvents subscribes a consumer to every routing key.
const AllEvents = "#"

// EventConsumer handles specific event types.
type EventConsumer interface {
	// EventTypes returns the routing keys this consumer handles.
	// e.g., ["meetings.meeting.created", "meetings.attendee.added"]
	EventTypes() []string

	// Handle processes the event.
	Handle(ctx context.Context, event *ConsumedEvent) error
}

// ConsumedEvent is the envelope delivered to consumers.
type ConsumedEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateID   int             `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
	Metadata      EventMetadata   `json:"metadata,omitempty"`
}

// EventMetadata contains optional metadata about the event.
type EventMetadata struct {
	CorrelationID string `json:"correlation_id,omitempty"`
}

// ConsumerFunc adapts a function to EventConsumer.
type ConsumerFunc struct {
	Types []string
	Fn    func(ctx context.Context, event *ConsumedEvent) error
}

func (c ConsumerFunc) EventTypes() []string { return c.Types }

func (c ConsumerFunc) Handle(ctx context.Context, event *ConsumedEvent) error {
	return c.Fn(ctx, event)
}
