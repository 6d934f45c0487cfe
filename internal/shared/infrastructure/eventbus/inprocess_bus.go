package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/meetingctl/internal/shared/domain"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
)

// InProcessEventBus delivers events synchronously to registered consumers.
type InProcessEventBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
	metrics  observability.Metrics
	mu       sync.Mutex
}

// NewInProcessEventBus creates a new in-process event bus.
func NewInProcessEventBus(logger *slog.Logger, metrics observability.Metrics) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &InProcessEventBus{
		registry: NewConsumerRegistry(logger),
		logger:   logger,
		metrics:  metrics,
	}
}

// RegisterConsumer registers an event consumer.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish wraps the domain event in an envelope and dispatches it.
// Consumer failures are logged, never returned: a side effect must not undo
// a state change that has already been committed.
func (b *InProcessEventBus) Publish(ctx context.Context, event domain.DomainEvent) error {
	consumed, err := NewConsumedEvent(ctx, event)
	if err != nil {
		return err
	}
	b.metrics.Counter(observability.MetricDomainEvents, 1, observability.T("routing_key", event.RoutingKey()))
	return b.PublishConsumedEvent(ctx, consumed)
}

// PublishConsumedEvent dispatches an envelope directly.
func (b *InProcessEventBus) PublishConsumedEvent(ctx context.Context, event *ConsumedEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	err := b.registry.Dispatch(ctx, event)
	duration := time.Since(start)

	if err != nil {
		b.logger.ErrorContext(ctx, "event dispatch failed",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil
	}

	b.logger.DebugContext(ctx, "event dispatched",
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		"duration_ms", duration.Milliseconds(),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessEventBus) Close() error {
	return nil
}

// GetRegistry returns the underlying consumer registry.
func (b *InProcessEventBus) GetRegistry() *ConsumerRegistry {
	return b.registry
}

// NewConsumedEvent builds the envelope for a domain event. The payload is the
// JSON encoding of the concrete event.
func NewConsumedEvent(ctx context.Context, event domain.DomainEvent) (*ConsumedEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", event.RoutingKey(), err)
	}
	return &ConsumedEvent{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
		Metadata: EventMetadata{
			CorrelationID: observability.CorrelationIDFromContext(ctx),
		},
	}, nil
}
