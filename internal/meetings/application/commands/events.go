package commands

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/meetingctl/internal/shared/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
)

// takeEvents drains the aggregate's pending events.
func takeEvents(aggregate sharedDomain.AggregateRoot) []sharedDomain.DomainEvent {
	events := aggregate.DomainEvents()
	aggregate.ClearDomainEvents()
	return events
}

// publish delivers events after the unit of work has committed. The state
// change stands even if delivery fails.
func publish(ctx context.Context, publisher eventbus.Publisher, events []sharedDomain.DomainEvent) error {
	if publisher == nil || len(events) == 0 {
		return nil
	}
	return eventbus.PublishAll(ctx, publisher, events)
}
