package subscribers

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
)

// AuditSubscriber writes every domain event to the log.
type AuditSubscriber struct {
	logger *slog.Logger
}

// NewAuditSubscriber creates a new audit subscriber.
func NewAuditSubscriber(logger *slog.Logger) *AuditSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditSubscriber{logger: logger}
}

// EventTypes returns the event types this subscriber handles.
func (s *AuditSubscriber) EventTypes() []string {
	return []string{eventbus.AllEvents}
}

// Handle logs the event envelope.
func (s *AuditSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	s.logger.DebugContext(ctx, "domain event",
		"routing_key", event.RoutingKey,
		"aggregate_id", event.AggregateID,
		"event_id", event.EventID,
		"correlation_id", event.Metadata.CorrelationID,
		"payload", string(event.Payload),
	)
	return nil
}
