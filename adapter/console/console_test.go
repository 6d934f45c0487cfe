package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/application/commands"
	"github.com/felixgeelhaar/meetingctl/internal/meetings/application/queries"
	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	"github.com/felixgeelhaar/meetingctl/internal/meetings/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/meetingctl/internal/shared/application"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
	"github.com/stretchr/testify/require"
)

// fixedNow is the clock used by guided prompts in tests.
var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

type fixture struct {
	handlers  Handlers
	navigator *Navigator
	terminal  *Terminal
	out       *bytes.Buffer
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture wires real handlers over the in-memory store. input feeds every
// prompt the commands issue.
func newFixture(t *testing.T, input string) *fixture {
	t.Helper()

	repo := persistence.NewInMemoryMeetingRepository()
	uow := sharedApplication.NewLockingUnitOfWork()
	publisher := eventbus.NoopPublisher{}

	handlers := Handlers{
		CreateMeeting:  commands.NewCreateMeetingHandler(repo, publisher, uow),
		DeleteMeeting:  commands.NewDeleteMeetingHandler(repo, publisher, uow),
		AddAttendee:    commands.NewAddAttendeeHandler(repo, publisher, uow),
		RemoveAttendee: commands.NewRemoveAttendeeHandler(repo, publisher, uow),
		ListMeetings:   queries.NewListMeetingsHandler(repo),
		GetMeeting:     queries.NewGetMeetingHandler(repo),
	}

	out := &bytes.Buffer{}
	terminal := NewTerminal(strings.NewReader(input), out)
	navigator := NewNavigator(handlers, terminal, discardLogger())
	navigator.now = func() time.Time { return fixedNow }

	return &fixture{
		handlers:  handlers,
		navigator: navigator,
		terminal:  terminal,
		out:       out,
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := domain.ParseDateTime(value)
	require.NoError(t, err)
	return ts
}

// seed stores a meeting and adds attendees through the handlers.
func (f *fixture) seed(t *testing.T, name string, category domain.Category, start, end string, attendees ...string) *domain.Meeting {
	t.Helper()
	ctx := context.Background()

	m, err := domain.NewMeeting(name, "Owner", name+" description", category, domain.TypeRemote, mustTime(t, start), mustTime(t, end))
	require.NoError(t, err)
	id, err := f.handlers.CreateMeeting.Handle(ctx, m)
	require.NoError(t, err)

	for _, person := range attendees {
		_, err := f.handlers.AddAttendee.Handle(ctx, commands.AddAttendeeCommand{MeetingID: id, Person: person})
		require.NoError(t, err)
	}

	stored, err := f.handlers.GetMeeting.Handle(ctx, id)
	require.NoError(t, err)
	return stored
}

// run dispatches line against v and fails the test if it does not match.
func (f *fixture) run(t *testing.T, v View, line string) (View, bool, error) {
	t.Helper()
	cmd, args, err := Dispatch(v, line)
	require.NoError(t, err)
	transition, err := f.navigator.Execute(context.Background(), v, cmd, args)
	next, ok := transition.Next()
	return next, ok, err
}

func names(meetings []*domain.Meeting) []string {
	out := make([]string, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, m.Name())
	}
	return out
}
