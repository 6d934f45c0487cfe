package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeetingCreated(t *testing.T) {
	m := newTestMeeting(t)
	m.AssignID(3)

	event := NewMeetingCreated(m)

	assert.Equal(t, 3, event.MeetingID)
	assert.Equal(t, "Sprint review", event.Name)
	assert.Equal(t, "Alice", event.ResponsiblePerson)
	assert.Equal(t, RoutingKeyMeetingCreated, event.RoutingKey())
	assert.Equal(t, aggregateType, event.AggregateType())
	assert.Equal(t, 3, event.AggregateID())
}

func TestMeeting_MarkDeleted(t *testing.T) {
	m := RehydrateMeeting(5, "Retro", "Alice", "", CategoryShort, TypeRemote, testStart, testEnd, nil)

	m.MarkDeleted()

	events := m.DomainEvents()
	require.Len(t, events, 1)
	event, ok := events[0].(*MeetingDeleted)
	require.True(t, ok)
	assert.Equal(t, 5, event.MeetingID)
	assert.Equal(t, RoutingKeyMeetingDeleted, event.RoutingKey())
}

func TestNewAttendeeAdded(t *testing.T) {
	m := RehydrateMeeting(8, "Retro", "Alice", "", CategoryShort, TypeRemote, testStart, testEnd, nil)

	require.NoError(t, m.AddAttendee("Bob"))

	events := m.DomainEvents()
	require.Len(t, events, 1)
	event, ok := events[0].(*AttendeeAdded)
	require.True(t, ok)
	assert.Equal(t, 8, event.MeetingID)
	assert.Equal(t, "Bob", event.Person)
	assert.Equal(t, RoutingKeyAttendeeAdded, event.RoutingKey())
}

func TestFailedMutationsEmitNoEvents(t *testing.T) {
	m := RehydrateMeeting(8, "Retro", "Alice", "", CategoryShort, TypeRemote, testStart, testEnd, []string{"Bob"})

	_ = m.AddAttendee("Bob")
	_ = m.AddAttendee("Alice")
	_ = m.RemoveAttendee("Zed")

	assert.Empty(t, m.DomainEvents())
}
