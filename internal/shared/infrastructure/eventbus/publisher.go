package eventbus

import (
	"context"

	"github.com/felixgeelhaar/meetingctl/internal/shared/domain"
)

// Publisher delivers domain events raised by aggregates.
type Publisher interface {
	Publish(ctx context.Context, event domain.DomainEvent) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.DomainEvent) error { return nil }
func (NoopPublisher) Close() error                                      { return nil }

// PublishAll publishes events in order and stops at the first failure.
func PublishAll(ctx context.Context, publisher Publisher, events []domain.DomainEvent) error {
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
