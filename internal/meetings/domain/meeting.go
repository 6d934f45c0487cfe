package domain

import (
	"slices"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/meetingctl/internal/shared/domain"
)

// Meeting represents a scheduled event with an owner, a time window and an
// attendee roster. The responsible person is never part of the roster.
type Meeting struct {
	sharedDomain.BaseAggregateRoot
	id                int
	name              string
	responsiblePerson string
	description       string
	category          Category
	meetingType       Type
	startDate         time.Time
	endDate           time.Time
	attendees         []string
}

// NewMeeting creates a meeting that has not been stored yet (ID 0).
func NewMeeting(
	name string,
	responsiblePerson string,
	description string,
	category Category,
	meetingType Type,
	startDate time.Time,
	endDate time.Time,
) (*Meeting, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMeetingEmptyName
	}
	responsiblePerson = strings.TrimSpace(responsiblePerson)
	if responsiblePerson == "" {
		return nil, ErrMeetingEmptyResponsible
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if !meetingType.IsValid() {
		return nil, ErrInvalidType
	}
	if !startDate.Before(endDate) {
		return nil, ErrMeetingInvalidPeriod
	}

	return &Meeting{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		name:              name,
		responsiblePerson: responsiblePerson,
		description:       description,
		category:          category,
		meetingType:       meetingType,
		startDate:         startDate,
		endDate:           endDate,
		attendees:         make([]string, 0),
	}, nil
}

// Getters
func (m *Meeting) ID() int                   { return m.id }
func (m *Meeting) Name() string              { return m.name }
func (m *Meeting) ResponsiblePerson() string { return m.responsiblePerson }
func (m *Meeting) Description() string       { return m.description }
func (m *Meeting) Category() Category        { return m.category }
func (m *Meeting) Type() Type                { return m.meetingType }
func (m *Meeting) StartDate() time.Time      { return m.startDate }
func (m *Meeting) EndDate() time.Time        { return m.endDate }

// Attendees returns a copy of the roster in insertion order.
func (m *Meeting) Attendees() []string {
	return slices.Clone(m.attendees)
}

// AttendeeCount returns the roster size.
func (m *Meeting) AttendeeCount() int { return len(m.attendees) }

// HasAttendee reports whether person is on the roster (case-sensitive).
func (m *Meeting) HasAttendee(person string) bool {
	return slices.Contains(m.attendees, person)
}

// ValidateFuture checks that both ends of the meeting lie after now.
func (m *Meeting) ValidateFuture(now time.Time) error {
	if !m.startDate.After(now) || !m.endDate.After(now) {
		return ErrMeetingInPast
	}
	return nil
}

// AssignID sets the repository identity. It is called once, on creation.
func (m *Meeting) AssignID(id int) {
	if m.id != 0 {
		return
	}
	m.id = id
	m.AddDomainEvent(NewMeetingCreated(m))
}

// AddAttendee appends person to the roster.
func (m *Meeting) AddAttendee(person string) error {
	if person == "" {
		return ErrAttendeeEmpty
	}
	if person == m.responsiblePerson {
		return ErrAttendeeIsResponsible
	}
	if m.HasAttendee(person) {
		return ErrAttendeeExists
	}
	m.attendees = append(m.attendees, person)
	m.AddDomainEvent(NewAttendeeAdded(m, person))
	return nil
}

// RemoveAttendee removes the single matching roster entry.
func (m *Meeting) RemoveAttendee(person string) error {
	if person == m.responsiblePerson {
		return ErrAttendeeIsResponsible
	}
	idx := slices.Index(m.attendees, person)
	if idx < 0 {
		return ErrAttendeeNotFound
	}
	m.attendees = slices.Delete(m.attendees, idx, idx+1)
	m.AddDomainEvent(NewAttendeeRemoved(m, person))
	return nil
}

// MarkDeleted records the deletion event before the meeting is dropped.
func (m *Meeting) MarkDeleted() {
	m.AddDomainEvent(NewMeetingDeleted(m))
}

// RehydrateMeeting recreates a meeting from stored state.
func RehydrateMeeting(
	id int,
	name string,
	responsiblePerson string,
	description string,
	category Category,
	meetingType Type,
	startDate time.Time,
	endDate time.Time,
	attendees []string,
) *Meeting {
	if attendees == nil {
		attendees = make([]string, 0)
	}
	return &Meeting{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		id:                id,
		name:              name,
		responsiblePerson: responsiblePerson,
		description:       description,
		category:          category,
		meetingType:       meetingType,
		startDate:         startDate,
		endDate:           endDate,
		attendees:         slices.Clone(attendees),
	}
}
