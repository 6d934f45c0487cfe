package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents something that happened in the domain.
type DomainEvent interface {
	EventID() uuid.UUID
	AggregateID() int
	AggregateType() string
	RoutingKey() string
	OccurredAt() time.Time
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	eventID       uuid.UUID
	aggregateID   int
	aggregateType string
	routingKey    string
	occurredAt    time.Time
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(aggregateID int, aggregateType, routingKey string) BaseEvent {
	return BaseEvent{
		eventID:       uuid.New(),
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		routingKey:    routingKey,
		occurredAt:    time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.eventID }
func (e BaseEvent) AggregateID() int      { return e.aggregateID }
func (e BaseEvent) AggregateType() string { return e.aggregateType }
func (e BaseEvent) RoutingKey() string    { return e.routingKey }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }
