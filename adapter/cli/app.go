package cli

import (
	"github.com/felixgeelhaar/meetingctl/adapter/console"
	"github.com/felixgeelhaar/meetingctl/internal/app"
	meetingCommands "github.com/felixgeelhaar/meetingctl/internal/meetings/application/commands"
	meetingQueries "github.com/felixgeelhaar/meetingctl/internal/meetings/application/queries"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// Meeting Command Handlers
	CreateMeetingHandler  *meetingCommands.CreateMeetingHandler
	DeleteMeetingHandler  *meetingCommands.DeleteMeetingHandler
	AddAttendeeHandler    *meetingCommands.AddAttendeeHandler
	RemoveAttendeeHandler *meetingCommands.RemoveAttendeeHandler

	// Meeting Query Handlers
	ListMeetingsHandler *meetingQueries.ListMeetingsHandler
	GetMeetingHandler   *meetingQueries.GetMeetingHandler

	Metrics observability.Metrics
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createMeetingHandler *meetingCommands.CreateMeetingHandler,
	deleteMeetingHandler *meetingCommands.DeleteMeetingHandler,
	addAttendeeHandler *meetingCommands.AddAttendeeHandler,
	removeAttendeeHandler *meetingCommands.RemoveAttendeeHandler,
	listMeetingsHandler *meetingQueries.ListMeetingsHandler,
	getMeetingHandler *meetingQueries.GetMeetingHandler,
) *App {
	return &App{
		CreateMeetingHandler:  createMeetingHandler,
		DeleteMeetingHandler:  deleteMeetingHandler,
		AddAttendeeHandler:    addAttendeeHandler,
		RemoveAttendeeHandler: removeAttendeeHandler,
		ListMeetingsHandler:   listMeetingsHandler,
		GetMeetingHandler:     getMeetingHandler,
		Metrics:               observability.NoopMetrics{},
	}
}

// NewAppFromContainer wires an App to the container's handlers and metrics.
func NewAppFromContainer(c *app.Container) *App {
	a := NewApp(
		c.CreateMeetingHandler,
		c.DeleteMeetingHandler,
		c.AddAttendeeHandler,
		c.RemoveAttendeeHandler,
		c.ListMeetingsHandler,
		c.GetMeetingHandler,
	)
	a.SetMetrics(c.Metrics)
	return a
}

// SetMetrics updates the metrics collector.
func (a *App) SetMetrics(metrics observability.Metrics) {
	a.Metrics = metrics
}

// ConsoleHandlers returns the operations the interactive screens drive.
func (a *App) ConsoleHandlers() console.Handlers {
	return console.Handlers{
		CreateMeeting:  a.CreateMeetingHandler,
		DeleteMeeting:  a.DeleteMeetingHandler,
		AddAttendee:    a.AddAttendeeHandler,
		RemoveAttendee: a.RemoveAttendeeHandler,
		ListMeetings:   a.ListMeetingsHandler,
		GetMeeting:     a.GetMeetingHandler,
	}
}
