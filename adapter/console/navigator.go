package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/application/commands"
	"github.com/felixgeelhaar/meetingctl/internal/meetings/application/queries"
	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
)

// Transition is the outcome of a command: either the next view or the end
// of the session.
type Transition struct {
	next      View
	terminate bool
}

// Continue moves the session to v.
func Continue(v View) Transition {
	return Transition{next: v}
}

// Terminate ends the session.
func Terminate() Transition {
	return Transition{terminate: true}
}

// Next returns the view to show. ok is false when the session ends.
func (t Transition) Next() (View, bool) {
	return t.next, !t.terminate
}

// Handlers are the application operations the screens drive.
type Handlers struct {
	CreateMeeting  *commands.CreateMeetingHandler
	DeleteMeeting  *commands.DeleteMeetingHandler
	AddAttendee    *commands.AddAttendeeHandler
	RemoveAttendee *commands.RemoveAttendeeHandler
	ListMeetings   *queries.ListMeetingsHandler
	GetMeeting     *queries.GetMeetingHandler
}

// Navigator executes dispatched commands and computes the next view.
type Navigator struct {
	handlers Handlers
	terminal *Terminal
	logger   *slog.Logger
	now      func() time.Time
}

// NewNavigator creates a navigator. The terminal is used by commands that
// prompt for more input.
func NewNavigator(handlers Handlers, terminal *Terminal, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{
		handlers: handlers,
		terminal: terminal,
		logger:   logger,
		now:      time.Now,
	}
}

// Execute runs cmd from view v. Operation failures are rendered into the
// returned view and also returned as the error so callers can record them.
// Input exhaustion during a prompt terminates without an error.
func (n *Navigator) Execute(ctx context.Context, v View, cmd Command, args []string) (Transition, error) {
	var (
		next View
		err  error
	)

	switch cmd.Kind {
	case KindQuit:
		return Terminate(), nil
	case KindCreateMeeting:
		next, err = n.createMeeting(ctx)
	case KindListMeetings, KindReturnToList, KindClearFilters:
		next, err = n.listAll(ctx, Messages{})
	case KindReturnToMain:
		next = MainView(Messages{})
	case KindViewMeeting:
		next, err = n.viewMeeting(ctx, v, cmd.Meeting)
	case KindDeleteMeeting:
		next, err = n.deleteMeeting(ctx, v, cmd.Meeting)
	case KindAddAttendee:
		next, err = n.addAttendee(ctx, cmd.Meeting, args)
	case KindRemoveAttendee:
		next, err = n.removeAttendee(ctx, cmd.Meeting, args)
	case KindFilterDescription:
		next = ListView(domain.FilterByDescription(v.Meetings, strings.Join(args, " ")),
			Messages{Success: "Applied filter by description"})
	case KindFilterResponsiblePerson:
		next = ListView(domain.FilterByResponsiblePerson(v.Meetings, strings.Join(args, " ")),
			Messages{Success: "Applied filter by responsible person"})
	case KindFilterCategory:
		next, err = filterList(v, args, 1, "Applied filter by category", func(a []string) ([]*domain.Meeting, error) {
			return domain.FilterByCategory(v.Meetings, a[0])
		})
	case KindFilterType:
		next, err = filterList(v, args, 1, "Applied filter by type", func(a []string) ([]*domain.Meeting, error) {
			return domain.FilterByType(v.Meetings, a[0])
		})
	case KindFilterDateRange:
		next, err = filterList(v, args, 4, "Applied filter with dates", func(a []string) ([]*domain.Meeting, error) {
			start, err := domain.ParseDateTime(a[0] + " " + a[1])
			if err != nil {
				return nil, errStartDateFormat
			}
			end, err := domain.ParseDateTime(a[2] + " " + a[3])
			if err != nil {
				return nil, errEndDateFormat
			}
			return domain.FilterByDateRange(v.Meetings, start, end)
		})
	case KindFilterMinAttendees:
		next, err = filterList(v, args, 1, "Applied filter with attendee count", func(a []string) ([]*domain.Meeting, error) {
			return domain.FilterByMinAttendees(v.Meetings, a[0])
		})
	default:
		return Continue(v), fmt.Errorf("unhandled command kind %d", cmd.Kind)
	}

	if errors.Is(err, io.EOF) {
		return Terminate(), nil
	}
	return Continue(next), err
}

// filterList narrows the subset held by a list view. On failure the same
// subset is shown again with the failure message.
func filterList(v View, args []string, want int, success string, apply func([]string) ([]*domain.Meeting, error)) (View, error) {
	if len(args) != want {
		return ListView(v.Meetings, Messages{Failure: failureText(errArgumentLength)}), errArgumentLength
	}
	filtered, err := apply(args)
	if err != nil {
		return ListView(v.Meetings, Messages{Failure: failureText(err)}), err
	}
	return ListView(filtered, Messages{Success: success}), nil
}

func (n *Navigator) listAll(ctx context.Context, msgs Messages) (View, error) {
	meetings, err := n.handlers.ListMeetings.Handle(ctx)
	if err != nil {
		return ListView(nil, Messages{Failure: failureText(err)}), err
	}
	return ListView(meetings, msgs), nil
}

func (n *Navigator) createMeeting(ctx context.Context) (View, error) {
	n.terminal.Clear()
	meeting, err := n.terminal.PromptMeeting(n.now())
	if err != nil {
		return MainView(Messages{Failure: failureText(err)}), err
	}

	id, err := n.handlers.CreateMeeting.Handle(ctx, meeting)
	if id == 0 {
		return MainView(Messages{Failure: failureText(err)}), err
	}
	if err != nil {
		n.logger.WarnContext(ctx, "meeting created but event delivery failed", "meeting_id", id, "error", err)
	}
	n.logger.InfoContext(ctx, "meeting created", "meeting_id", id)
	return MainView(Messages{Success: fmt.Sprintf("Meeting '%s' created with id %d", meeting.Name(), id)}), nil
}

func (n *Navigator) viewMeeting(ctx context.Context, v View, target *domain.Meeting) (View, error) {
	meeting, err := n.handlers.GetMeeting.Handle(ctx, target.ID())
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			err = errMeetingUnavailable
		}
		return v.WithMessages(Messages{Failure: failureText(err)}), err
	}
	return DetailView(meeting, Messages{}), nil
}

func (n *Navigator) deleteMeeting(ctx context.Context, v View, target *domain.Meeting) (View, error) {
	ok, err := n.terminal.Confirm("Are you sure you want to delete the meeting? (type: yes or no): ")
	if err != nil {
		return v, err
	}
	if !ok {
		return DetailView(target, Messages{Failure: failureText(errDeleteAborted)}), errDeleteAborted
	}

	deleteErr := n.handlers.DeleteMeeting.Handle(ctx, target.ID())

	msgs := Messages{Success: fmt.Sprintf("Meeting '%s' deleted", target.Name())}
	if deleteErr != nil {
		msgs = Messages{Failure: failureText(deleteErr)}
	}
	next, err := n.listAll(ctx, msgs)
	if deleteErr != nil {
		return next, deleteErr
	}
	return next, err
}

func (n *Navigator) addAttendee(ctx context.Context, target *domain.Meeting, args []string) (View, error) {
	if len(args) == 0 {
		return DetailView(target, Messages{Failure: failureText(errMissingAttendee)}), errMissingAttendee
	}
	person := strings.Join(args, " ")

	result, err := n.handlers.AddAttendee.Handle(ctx, commands.AddAttendeeCommand{
		MeetingID: target.ID(),
		Person:    person,
	})
	if result == nil {
		return n.failedDetail(target, err)
	}
	if err != nil {
		n.logger.WarnContext(ctx, "attendee added but event delivery failed", "meeting_id", target.ID(), "error", err)
	}

	return DetailView(result.Meeting, Messages{
		Success: fmt.Sprintf("%s added to the meeting", person),
		Warning: overlapWarning(person, result.Overlaps),
	}), nil
}

func (n *Navigator) removeAttendee(ctx context.Context, target *domain.Meeting, args []string) (View, error) {
	if len(args) == 0 {
		return DetailView(target, Messages{Failure: failureText(errMissingAttendee)}), errMissingAttendee
	}
	person := strings.Join(args, " ")

	meeting, err := n.handlers.RemoveAttendee.Handle(ctx, commands.RemoveAttendeeCommand{
		MeetingID: target.ID(),
		Person:    person,
	})
	if meeting == nil {
		return n.failedDetail(target, err)
	}
	if err != nil {
		n.logger.WarnContext(ctx, "attendee removed but event delivery failed", "meeting_id", target.ID(), "error", err)
	}
	return DetailView(meeting, Messages{Success: fmt.Sprintf("%s removed from the meeting", person)}), nil
}

// failedDetail re-renders the meeting with the failure.
func (n *Navigator) failedDetail(target *domain.Meeting, err error) (View, error) {
	if errors.Is(err, domain.ErrNotFound) {
		n.logger.Warn("meeting disappeared while viewed", "meeting_id", target.ID(), "error", err)
	}
	return DetailView(target, Messages{Failure: failureText(err)}), err
}

func overlapWarning(person string, overlaps []*domain.Meeting) string {
	switch len(overlaps) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s overlaps with meeting %s", person, overlaps[0].Name())
	default:
		names := make([]string, 0, len(overlaps))
		for _, m := range overlaps {
			names = append(names, m.Name())
		}
		return fmt.Sprintf("%s overlaps with meetings %s", person, strings.Join(names, ", "))
	}
}
