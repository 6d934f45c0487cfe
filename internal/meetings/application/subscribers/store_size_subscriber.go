package subscribers

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
)

// MeetingLister returns the stored meetings.
type MeetingLister interface {
	Handle(ctx context.Context) ([]*domain.Meeting, error)
}

// StoreSizeSubscriber keeps the stored meetings gauge current.
type StoreSizeSubscriber struct {
	lister  MeetingLister
	metrics observability.Metrics
}

// NewStoreSizeSubscriber creates a new store size subscriber.
func NewStoreSizeSubscriber(lister MeetingLister, metrics observability.Metrics) *StoreSizeSubscriber {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &StoreSizeSubscriber{lister: lister, metrics: metrics}
}

// EventTypes returns the event types this subscriber handles.
func (s *StoreSizeSubscriber) EventTypes() []string {
	return []string{
		domain.RoutingKeyMeetingCreated,
		domain.RoutingKeyMeetingDeleted,
	}
}

// Handle recounts the store and updates the gauge.
func (s *StoreSizeSubscriber) Handle(ctx context.Context, _ *eventbus.ConsumedEvent) error {
	meetings, err := s.lister.Handle(ctx)
	if err != nil {
		return fmt.Errorf("count meetings: %w", err)
	}
	s.metrics.Gauge(observability.MetricMeetingsStored, float64(len(meetings)))
	return nil
}
