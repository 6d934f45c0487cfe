package commands

import (
	"context"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	sharedApplication "github.com/felixgeelhaar/meetingctl/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/meetingctl/internal/shared/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
)

// AddAttendeeCommand adds Person to the meeting identified by MeetingID.
type AddAttendeeCommand struct {
	MeetingID int
	Person    string
}

// AddAttendeeResult carries the updated meeting and the other meetings the
// person attends whose time window collides with it.
type AddAttendeeResult struct {
	Meeting  *domain.Meeting
	Overlaps []*domain.Meeting
}

// AddAttendeeHandler handles the AddAttendeeCommand.
type AddAttendeeHandler struct {
	repo      domain.Repository
	publisher eventbus.Publisher
	uow       sharedApplication.UnitOfWork
}

// NewAddAttendeeHandler creates a new AddAttendeeHandler.
func NewAddAttendeeHandler(repo domain.Repository, publisher eventbus.Publisher, uow sharedApplication.UnitOfWork) *AddAttendeeHandler {
	return &AddAttendeeHandler{
		repo:      repo,
		publisher: publisher,
		uow:       uow,
	}
}

// Handle adds the attendee. Overlaps are informational and never block the
// addition.
func (h *AddAttendeeHandler) Handle(ctx context.Context, cmd AddAttendeeCommand) (*AddAttendeeResult, error) {
	var (
		result *AddAttendeeResult
		events []sharedDomain.DomainEvent
	)

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		meeting, err := h.repo.FindByID(txCtx, cmd.MeetingID)
		if err != nil {
			return err
		}
		if meeting == nil {
			return domain.ErrMeetingNotFound
		}

		if err := meeting.AddAttendee(cmd.Person); err != nil {
			return err
		}
		if err := h.repo.Save(txCtx, meeting); err != nil {
			return err
		}

		all, err := h.repo.FindAll(txCtx)
		if err != nil {
			return err
		}

		events = takeEvents(meeting)
		result = &AddAttendeeResult{
			Meeting:  meeting,
			Overlaps: domain.FindOverlapping(all, meeting, cmd.Person),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, publish(ctx, h.publisher, events)
}
