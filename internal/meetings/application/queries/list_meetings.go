package queries

import (
	"context"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
)

// ListMeetingsHandler returns the stored meetings.
type ListMeetingsHandler struct {
	repo domain.Repository
}

// NewListMeetingsHandler creates a new ListMeetingsHandler.
func NewListMeetingsHandler(repo domain.Repository) *ListMeetingsHandler {
	return &ListMeetingsHandler{repo: repo}
}

// Handle returns every meeting in insertion order. The slice is a snapshot:
// later creations and deletions do not change it.
func (h *ListMeetingsHandler) Handle(ctx context.Context) ([]*domain.Meeting, error) {
	return h.repo.FindAll(ctx)
}

// GetMeetingHandler looks up a single meeting.
type GetMeetingHandler struct {
	repo domain.Repository
}

// NewGetMeetingHandler creates a new GetMeetingHandler.
func NewGetMeetingHandler(repo domain.Repository) *GetMeetingHandler {
	return &GetMeetingHandler{repo: repo}
}

// Handle returns the meeting or ErrMeetingNotFound.
func (h *GetMeetingHandler) Handle(ctx context.Context, id int) (*domain.Meeting, error) {
	meeting, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, domain.ErrMeetingNotFound
	}
	return meeting, nil
}
