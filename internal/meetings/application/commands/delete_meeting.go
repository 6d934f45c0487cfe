package commands

import (
	"context"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	sharedApplication "github.com/felixgeelhaar/meetingctl/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/meetingctl/internal/shared/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
)

// DeleteMeetingHandler removes meetings.
type DeleteMeetingHandler struct {
	repo      domain.Repository
	publisher eventbus.Publisher
	uow       sharedApplication.UnitOfWork
}

// NewDeleteMeetingHandler creates a new DeleteMeetingHandler.
func NewDeleteMeetingHandler(repo domain.Repository, publisher eventbus.Publisher, uow sharedApplication.UnitOfWork) *DeleteMeetingHandler {
	return &DeleteMeetingHandler{
		repo:      repo,
		publisher: publisher,
		uow:       uow,
	}
}

// Handle removes the meeting with the given ID. The order of the remaining
// meetings is unchanged.
func (h *DeleteMeetingHandler) Handle(ctx context.Context, id int) error {
	var events []sharedDomain.DomainEvent
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		meeting, err := h.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if meeting == nil {
			return domain.ErrMeetingNotFound
		}

		if err := h.repo.Delete(txCtx, id); err != nil {
			return err
		}
		meeting.MarkDeleted()
		events = takeEvents(meeting)
		return nil
	})
	if err != nil {
		return err
	}

	return publish(ctx, h.publisher, events)
}
