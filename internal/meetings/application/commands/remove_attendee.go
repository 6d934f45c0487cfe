package commands

import (
	"context"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	sharedApplication "github.com/felixgeelhaar/meetingctl/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/meetingctl/internal/shared/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
)

// RemoveAttendeeCommand removes Person from the meeting identified by MeetingID.
type RemoveAttendeeCommand struct {
	MeetingID int
	Person    string
}

// RemoveAttendeeHandler handles the RemoveAttendeeCommand.
type RemoveAttendeeHandler struct {
	repo      domain.Repository
	publisher eventbus.Publisher
	uow       sharedApplication.UnitOfWork
}

// NewRemoveAttendeeHandler creates a new RemoveAttendeeHandler.
func NewRemoveAttendeeHandler(repo domain.Repository, publisher eventbus.Publisher, uow sharedApplication.UnitOfWork) *RemoveAttendeeHandler {
	return &RemoveAttendeeHandler{
		repo:      repo,
		publisher: publisher,
		uow:       uow,
	}
}

// Handle removes the attendee and returns the updated meeting.
func (h *RemoveAttendeeHandler) Handle(ctx context.Context, cmd RemoveAttendeeCommand) (*domain.Meeting, error) {
	var (
		meeting *domain.Meeting
		events  []sharedDomain.DomainEvent
	)

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		meeting, err = h.repo.FindByID(txCtx, cmd.MeetingID)
		if err != nil {
			return err
		}
		if meeting == nil {
			return domain.ErrMeetingNotFound
		}

		if err := meeting.RemoveAttendee(cmd.Person); err != nil {
			return err
		}
		if err := h.repo.Save(txCtx, meeting); err != nil {
			return err
		}
		events = takeEvents(meeting)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return meeting, publish(ctx, h.publisher, events)
}
