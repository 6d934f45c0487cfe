package commands

import (
	"context"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	sharedApplication "github.com/felixgeelhaar/meetingctl/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/meetingctl/internal/shared/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
)

// CreateMeetingHandler stores new meetings.
type CreateMeetingHandler struct {
	repo      domain.Repository
	publisher eventbus.Publisher
	uow       sharedApplication.UnitOfWork
}

// NewCreateMeetingHandler creates a new CreateMeetingHandler.
func NewCreateMeetingHandler(repo domain.Repository, publisher eventbus.Publisher, uow sharedApplication.UnitOfWork) *CreateMeetingHandler {
	return &CreateMeetingHandler{
		repo:      repo,
		publisher: publisher,
		uow:       uow,
	}
}

// Handle assigns the next ID to meeting, appends it to the store and returns
// the ID.
func (h *CreateMeetingHandler) Handle(ctx context.Context, meeting *domain.Meeting) (int, error) {
	if meeting == nil {
		return 0, domain.ErrMeetingRequired
	}
	if meeting.ID() != 0 {
		return 0, domain.ErrMeetingAlreadyStored
	}

	var events []sharedDomain.DomainEvent
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		id, err := h.repo.NextID(txCtx)
		if err != nil {
			return err
		}
		meeting.AssignID(id)

		if err := h.repo.Save(txCtx, meeting); err != nil {
			return err
		}
		events = takeEvents(meeting)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return meeting.ID(), publish(ctx, h.publisher, events)
}
