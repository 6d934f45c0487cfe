package domain

import (
	sharedDomain "github.com/felixgeelhaar/meetingctl/internal/shared/domain"
)

const aggregateType = "Meeting"

// Routing keys for meeting events.
const (
	RoutingKeyMeetingCreated  = "meetings.meeting.created"
	RoutingKeyMeetingDeleted  = "meetings.meeting.deleted"
	RoutingKeyAttendeeAdded   = "meetings.attendee.added"
	RoutingKeyAttendeeRemoved = "meetings.attendee.removed"
)

// MeetingCreated is emitted when a meeting receives its ID.
type MeetingCreated struct {
	sharedDomain.BaseEvent
	MeetingID         int    `json:"meeting_id"`
	Name              string `json:"name"`
	ResponsiblePerson string `json:"responsible_person"`
}

// NewMeetingCreated creates a MeetingCreated event.
func NewMeetingCreated(m *Meeting) *MeetingCreated {
	return &MeetingCreated{
		BaseEvent:         sharedDomain.NewBaseEvent(m.ID(), aggregateType, RoutingKeyMeetingCreated),
		MeetingID:         m.ID(),
		Name:              m.Name(),
		ResponsiblePerson: m.ResponsiblePerson(),
	}
}

// MeetingDeleted is emitted when a meeting is removed.
type MeetingDeleted struct {
	sharedDomain.BaseEvent
	MeetingID int `json:"meeting_id"`
}

// NewMeetingDeleted creates a MeetingDeleted event.
func NewMeetingDeleted(m *Meeting) *MeetingDeleted {
	return &MeetingDeleted{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), aggregateType, RoutingKeyMeetingDeleted),
		MeetingID: m.ID(),
	}
}

// AttendeeAdded is emitted when a person joins the roster.
type AttendeeAdded struct {
	sharedDomain.BaseEvent
	MeetingID int    `json:"meeting_id"`
	Person    string `json:"person"`
}

// NewAttendeeAdded creates an AttendeeAdded event.
func NewAttendeeAdded(m *Meeting, person string) *AttendeeAdded {
	return &AttendeeAdded{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), aggregateType, RoutingKeyAttendeeAdded),
		MeetingID: m.ID(),
		Person:    person,
	}
}

// AttendeeRemoved is emitted when a person leaves the roster.
type AttendeeRemoved struct {
	sharedDomain.BaseEvent
	MeetingID int    `json:"meeting_id"`
	Person    string `json:"person"`
}

// NewAttendeeRemoved creates an AttendeeRemoved event.
func NewAttendeeRemoved(m *Meeting, person string) *AttendeeRemoved {
	return &AttendeeRemoved{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), aggregateType, RoutingKeyAttendeeRemoved),
		MeetingID: m.ID(),
		Person:    person,
	}
}
