package console

import (
	"bufio"
	"io"
	"slices"
	"strings"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
)

// ViewKind identifies a screen.
type ViewKind int

const (
	ViewMain ViewKind = iota
	ViewList
	ViewDetail
)

// Messages are the results of the operation that produced a view.
type Messages struct {
	Success string
	Warning string
	Failure string
}

// View is one screen. It is built fresh on every transition and never
// changed afterwards.
type View struct {
	Kind     ViewKind
	Name     string
	Body     string
	Commands []Command
	Messages Messages

	// Meetings is the filtered subset shown by a list view.
	Meetings []*domain.Meeting
	// Meeting is the subject of a detail view.
	Meeting *domain.Meeting
}

// MainView is the initial screen.
func MainView(msgs Messages) View {
	return View{
		Kind: ViewMain,
		Name: "Welcome to the internal meetings!",
		Body: "Navigate by typing the commands shown in brackets. Example: type 1 and press Enter to access [1]",
		Commands: []Command{
			createMeetingCommand(),
			listMeetingsCommand(),
			quitCommand(),
		},
		Messages: msgs,
	}
}

// ListView shows meetings and the filters that narrow them further.
func ListView(meetings []*domain.Meeting, msgs Messages) View {
	meetings = slices.Clone(meetings)

	commands := []Command{
		quitCommand(),
		clearFiltersCommand(),
		returnToMainCommand(),
		filterDescriptionCommand(),
		filterResponsiblePersonCommand(),
		filterCategoryCommand(),
		filterTypeCommand(),
		filterDateRangeCommand(),
		filterMinAttendeesCommand(),
	}
	for _, m := range meetings {
		commands = append(commands, viewMeetingCommand(m))
	}

	body := "Select a command from [ ] and follow it with its filter parameters"
	if len(meetings) == 0 {
		body += "\n\nNo meetings to show."
	}

	return View{
		Kind:     ViewList,
		Name:     "------------------------------ MEETINGS LIST ------------------------------",
		Body:     body,
		Commands: commands,
		Messages: msgs,
		Meetings: meetings,
	}
}

// DetailView shows one meeting and the operations on it.
func DetailView(m *domain.Meeting, msgs Messages) View {
	var body strings.Builder
	body.WriteString("Description: " + m.Description() + "\n")
	body.WriteString("Created by: " + m.ResponsiblePerson() + "\n")
	body.WriteString("Category: " + string(m.Category()) + "\n")
	body.WriteString("Type: " + string(m.Type()) + "\n")
	body.WriteString("Starts: " + domain.FormatDateTime(m.StartDate()) + "\n")
	body.WriteString("Ends: " + domain.FormatDateTime(m.EndDate()) + "\n")
	body.WriteString("Attendees: ")
	if attendees := m.Attendees(); len(attendees) > 0 {
		body.WriteString(strings.Join(attendees, ", "))
	} else {
		body.WriteString("none")
	}

	return View{
		Kind: ViewDetail,
		Name: "Meeting " + m.Name(),
		Body: body.String(),
		Commands: []Command{
			deleteMeetingCommand(m),
			addAttendeeCommand(m),
			removeAttendeeCommand(m),
			returnToListCommand(),
			quitCommand(),
		},
		Messages: msgs,
		Meeting:  m,
	}
}

// WithMessages returns a copy of the view carrying msgs instead of its own.
func (v View) WithMessages(msgs Messages) View {
	v.Messages = msgs
	return v
}

// Lookup finds the first command registered under name.
func (v View) Lookup(name string) (Command, bool) {
	for _, c := range v.Commands {
		if c.InvocationName == name {
			return c, true
		}
	}
	return Command{}, false
}

// Render writes the screen: name, body, the command list and any messages.
func (v View) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(v.Name + "\n\n")
	bw.WriteString(v.Body + "\n\n")
	for _, c := range v.Commands {
		bw.WriteString(c.Usage() + "\n")
	}
	for _, msg := range []string{v.Messages.Success, v.Messages.Warning, v.Messages.Failure} {
		if msg != "" {
			bw.WriteString("\n" + msg + "\n")
		}
	}
	return bw.Flush()
}
