package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/meetingctl/internal/shared/domain"
	"github.com/stretchr/testify/assert"
)

type testAggregate struct {
	domain.BaseAggregateRoot
	ID int
}

func newTestAggregate(id int) *testAggregate {
	return &testAggregate{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		ID:                id,
	}
}

func TestNewBaseAggregateRoot(t *testing.T) {
	agg := domain.NewBaseAggregateRoot()
	assert.Empty(t, agg.DomainEvents())
}

func TestBaseAggregateRoot_AddDomainEvent(t *testing.T) {
	agg := newTestAggregate(1)
	event := domain.NewBaseEvent(agg.ID, "TestAggregate", "test.aggregate.created")

	agg.AddDomainEvent(event)

	events := agg.DomainEvents()
	assert.Len(t, events, 1)
	assert.Equal(t, event.EventID(), events[0].EventID())
}

func TestBaseAggregateRoot_ClearDomainEvents(t *testing.T) {
	agg := newTestAggregate(1)
	agg.AddDomainEvent(domain.NewBaseEvent(agg.ID, "TestAggregate", "test.aggregate.created"))
	agg.AddDomainEvent(domain.NewBaseEvent(agg.ID, "TestAggregate", "test.aggregate.updated"))
	assert.Len(t, agg.DomainEvents(), 2)

	agg.ClearDomainEvents()
	assert.Empty(t, agg.DomainEvents())
}

func TestBaseAggregateRoot_ZeroValueUsable(t *testing.T) {
	var agg domain.BaseAggregateRoot
	agg.AddDomainEvent(domain.NewBaseEvent(2, "TestAggregate", "test.aggregate.created"))
	assert.Len(t, agg.DomainEvents(), 1)
}
