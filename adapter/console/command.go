// Package console implements the interactive meeting screens: views, the
// commands each view offers, line dispatch and the read-render loop.
package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
)

// CommandKind tags the variant of a Command.
type CommandKind int

const (
	KindQuit CommandKind = iota
	KindCreateMeeting
	KindListMeetings
	KindViewMeeting
	KindDeleteMeeting
	KindAddAttendee
	KindRemoveAttendee
	KindReturnToList
	KindReturnToMain
	KindClearFilters
	KindFilterDescription
	KindFilterResponsiblePerson
	KindFilterCategory
	KindFilterType
	KindFilterDateRange
	KindFilterMinAttendees
)

var kindNames = map[CommandKind]string{
	KindQuit:                    "quit",
	KindCreateMeeting:           "create_meeting",
	KindListMeetings:            "list_meetings",
	KindViewMeeting:             "view_meeting",
	KindDeleteMeeting:           "delete_meeting",
	KindAddAttendee:             "add_attendee",
	KindRemoveAttendee:          "remove_attendee",
	KindReturnToList:            "return_to_list",
	KindReturnToMain:            "return_to_main",
	KindClearFilters:            "clear_filters",
	KindFilterDescription:       "filter_description",
	KindFilterResponsiblePerson: "filter_responsible_person",
	KindFilterCategory:          "filter_category",
	KindFilterType:              "filter_type",
	KindFilterDateRange:         "filter_date_range",
	KindFilterMinAttendees:      "filter_min_attendees",
}

// String returns a stable name used in logs and metric labels.
func (k CommandKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a user-invocable operation bound to the view that offers it.
// Meeting is set for the variants that act on one meeting.
type Command struct {
	Kind           CommandKind
	InvocationName string
	Arguments      []string
	Description    string
	Meeting        *domain.Meeting
}

// Usage renders the command the way a view lists it.
func (c Command) Usage() string {
	line := "[" + c.InvocationName + "] " + c.Description
	if len(c.Arguments) > 0 {
		line += " (Arguments: " + strings.Join(c.Arguments, ", ") + ")"
	}
	return line
}

func quitCommand() Command {
	return Command{Kind: KindQuit, InvocationName: "x", Description: "Quit the program"}
}

func createMeetingCommand() Command {
	return Command{Kind: KindCreateMeeting, InvocationName: "1", Description: "Create a new meeting"}
}

func listMeetingsCommand() Command {
	return Command{
		Kind:           KindListMeetings,
		InvocationName: "2",
		Description:    "View all created meetings & filter meetings by specific parameters",
	}
}

// viewMeetingPrefix keeps per-meeting invocation names clear of the static
// list commands.
const viewMeetingPrefix = "2"

func viewMeetingCommand(m *domain.Meeting) Command {
	return Command{
		Kind:           KindViewMeeting,
		InvocationName: viewMeetingPrefix + strconv.Itoa(m.ID()),
		Description: fmt.Sprintf("Select meeting '%s' created by %s (Description: %s)",
			m.Name(), m.ResponsiblePerson(), m.Description()),
		Meeting: m,
	}
}

func deleteMeetingCommand(m *domain.Meeting) Command {
	return Command{Kind: KindDeleteMeeting, InvocationName: "DEL", Description: "Delete the meeting", Meeting: m}
}

func addAttendeeCommand(m *domain.Meeting) Command {
	return Command{
		Kind:           KindAddAttendee,
		InvocationName: "ADD",
		Arguments:      []string{"Attendee name"},
		Description:    "Add an attendee to this meeting",
		Meeting:        m,
	}
}

func removeAttendeeCommand(m *domain.Meeting) Command {
	return Command{
		Kind:           KindRemoveAttendee,
		InvocationName: "R",
		Arguments:      []string{"Attendee name"},
		Description:    "Remove an attendee from this meeting",
		Meeting:        m,
	}
}

func returnToListCommand() Command {
	return Command{Kind: KindReturnToList, InvocationName: "r", Description: "Return to the list view"}
}

func returnToMainCommand() Command {
	return Command{Kind: KindReturnToMain, InvocationName: "R", Description: "Return to the main menu"}
}

func clearFiltersCommand() Command {
	return Command{Kind: KindClearFilters, InvocationName: "CL", Description: "Clear filters"}
}

func filterDescriptionCommand() Command {
	return Command{
		Kind:           KindFilterDescription,
		InvocationName: "DC",
		Arguments:      []string{"Description"},
		Description:    "Filter meetings by description",
	}
}

func filterResponsiblePersonCommand() Command {
	return Command{
		Kind:           KindFilterResponsiblePerson,
		InvocationName: "RP",
		Arguments:      []string{"Responsible person name"},
		Description:    "Filter meetings by meeting creator",
	}
}

func filterCategoryCommand() Command {
	names := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		names = append(names, string(c))
	}
	return Command{
		Kind:           KindFilterCategory,
		InvocationName: "FC",
		Arguments:      []string{"Category name"},
		Description:    "Filter by category (" + strings.Join(names, ", ") + ")",
	}
}

func filterTypeCommand() Command {
	names := make([]string, 0, len(domain.Types()))
	for _, t := range domain.Types() {
		names = append(names, string(t))
	}
	return Command{
		Kind:           KindFilterType,
		InvocationName: "FT",
		Arguments:      []string{"Type name"},
		Description:    "Filter by type (" + strings.Join(names, ", ") + ")",
	}
}

func filterDateRangeCommand() Command {
	return Command{
		Kind:           KindFilterDateRange,
		InvocationName: "FD",
		Arguments: []string{
			"Start date (" + dateFormatHint + ")",
			"End date (" + dateFormatHint + ")",
		},
		Description: "Filter meetings between date ranges",
	}
}

func filterMinAttendeesCommand() Command {
	return Command{
		Kind:           KindFilterMinAttendees,
		InvocationName: "FN",
		Arguments:      []string{"Attendee number"},
		Description:    "Filter by minimal number of attendees",
	}
}

// dateFormatHint is DateTimeLayout as users know it.
const dateFormatHint = "yyyy-MM-dd HH:mm"
