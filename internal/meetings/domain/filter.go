package domain

import (
	"strconv"
	"strings"
	"time"
)

// The filters below never modify their input and keep the relative order of
// the meetings they retain.

func filter(meetings []*Meeting, keep func(*Meeting) bool) []*Meeting {
	out := make([]*Meeting, 0, len(meetings))
	for _, m := range meetings {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// FilterByDescription keeps meetings whose description contains substr (case-sensitive).
func FilterByDescription(meetings []*Meeting, substr string) []*Meeting {
	return filter(meetings, func(m *Meeting) bool {
		return strings.Contains(m.Description(), substr)
	})
}

// FilterByResponsiblePerson keeps meetings owned by exactly person.
func FilterByResponsiblePerson(meetings []*Meeting, person string) []*Meeting {
	return filter(meetings, func(m *Meeting) bool {
		return m.ResponsiblePerson() == person
	})
}

// FilterByCategory keeps meetings of the named category.
func FilterByCategory(meetings []*Meeting, name string) ([]*Meeting, error) {
	category, err := ParseCategory(name)
	if err != nil {
		return meetings, err
	}
	return filter(meetings, func(m *Meeting) bool {
		return m.Category() == category
	}), nil
}

// FilterByType keeps meetings of the named type.
func FilterByType(meetings []*Meeting, name string) ([]*Meeting, error) {
	meetingType, err := ParseType(name)
	if err != nil {
		return meetings, err
	}
	return filter(meetings, func(m *Meeting) bool {
		return m.Type() == meetingType
	}), nil
}

// FilterByDateRange keeps meetings that lie entirely within [start, end].
func FilterByDateRange(meetings []*Meeting, start, end time.Time) ([]*Meeting, error) {
	if !start.Before(end) {
		return meetings, ErrInvalidDateRange
	}
	return filter(meetings, func(m *Meeting) bool {
		return !m.StartDate().Before(start) && !m.EndDate().After(end)
	}), nil
}

// FilterByMinAttendees keeps meetings with at least count attendees.
func FilterByMinAttendees(meetings []*Meeting, count string) ([]*Meeting, error) {
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return meetings, ErrInvalidAttendeeCount
	}
	return filter(meetings, func(m *Meeting) bool {
		return m.AttendeeCount() >= n
	}), nil
}

// Overlaps reports whether target's start or end falls inside other's window,
// boundaries included. The check is one-sided: a target that
// strictly contains other is not reported.
func Overlaps(target, other *Meeting) bool {
	within := func(t time.Time) bool {
		return !t.Before(other.StartDate()) && !t.After(other.EndDate())
	}
	return within(target.StartDate()) || within(target.EndDate())
}

// FindOverlapping returns every other meeting that person attends whose
// window overlaps target's.
func FindOverlapping(meetings []*Meeting, target *Meeting, person string) []*Meeting {
	return filter(meetings, func(m *Meeting) bool {
		if m == target || (target.ID() != 0 && m.ID() == target.ID()) {
			return false
		}
		return m.HasAttendee(person) && Overlaps(target, m)
	})
}
