package domain

import "errors"

// Kind classifies a domain error so callers can tell a missing target apart
// from a broken business rule or malformed input.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindParse          Kind = "parse"
	KindUnknownCommand Kind = "unknown_command"
)

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches kind sentinels: errors.Is(err, ErrValidation) holds for every
// validation error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Kind sentinels.
var (
	ErrValidation     = &Error{Kind: KindValidation}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrParse          = &Error{Kind: KindParse}
	ErrUnknownCommand = &Error{Kind: KindUnknownCommand}
)

// Domain errors.
var (
	ErrMeetingRequired         = &Error{Kind: KindValidation, Message: "meeting is required"}
	ErrMeetingAlreadyStored    = &Error{Kind: KindValidation, Message: "meeting already has an id"}
	ErrMeetingEmptyName        = &Error{Kind: KindValidation, Message: "meeting name cannot be empty"}
	ErrMeetingEmptyResponsible = &Error{Kind: KindValidation, Message: "responsible person cannot be empty"}
	ErrMeetingInvalidPeriod    = &Error{Kind: KindValidation, Message: "start date must be before end date"}
	ErrMeetingInPast           = &Error{Kind: KindValidation, Message: "date provided has already happened"}
	ErrAttendeeEmpty           = &Error{Kind: KindValidation, Message: "attendee name cannot be empty"}
	ErrAttendeeIsResponsible   = &Error{Kind: KindValidation, Message: "responsible person cannot be an attendee"}
	ErrAttendeeExists          = &Error{Kind: KindValidation, Message: "person is already attending this meeting"}
	ErrAttendeeNotFound        = &Error{Kind: KindValidation, Message: "person is not attending this meeting"}
	ErrInvalidDateRange        = &Error{Kind: KindValidation, Message: "start date cannot be later than end date"}
	ErrMeetingNotFound         = &Error{Kind: KindNotFound, Message: "meeting not found"}
	ErrInvalidCategory         = &Error{Kind: KindParse, Message: "category not found"}
	ErrInvalidType             = &Error{Kind: KindParse, Message: "type not found"}
	ErrInvalidDateTime         = &Error{Kind: KindParse, Message: "incorrect date format, use yyyy-MM-dd HH:mm"}
	ErrInvalidAttendeeCount    = &Error{Kind: KindParse, Message: "attendee count must be a non-negative number"}
)

// KindOf returns the kind of a domain error, or "" for foreign errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
