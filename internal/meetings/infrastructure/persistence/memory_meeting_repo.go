package persistence

import (
	"context"
	"slices"
	"sync"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
)

// InMemoryMeetingRepository keeps meetings in insertion order for the life
// of the process.
type InMemoryMeetingRepository struct {
	mu       sync.RWMutex
	meetings []*domain.Meeting
	lastID   int
}

// NewInMemoryMeetingRepository creates an empty in-memory repository.
func NewInMemoryMeetingRepository() *InMemoryMeetingRepository {
	return &InMemoryMeetingRepository{
		meetings: make([]*domain.Meeting, 0),
	}
}

// NextID hands out the next identity. IDs of deleted meetings are not reused.
func (r *InMemoryMeetingRepository) NextID(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	return r.lastID, nil
}

// Save appends a new meeting or replaces the stored one with the same ID.
func (r *InMemoryMeetingRepository) Save(_ context.Context, meeting *domain.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx := r.indexOf(meeting.ID()); idx >= 0 {
		r.meetings[idx] = meeting
		return nil
	}
	r.meetings = append(r.meetings, meeting)
	return nil
}

// FindByID returns nil, nil when no meeting has the ID.
func (r *InMemoryMeetingRepository) FindByID(_ context.Context, id int) (*domain.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(id); idx >= 0 {
		return r.meetings[idx], nil
	}
	return nil, nil
}

// FindAll returns a fresh slice in insertion order.
func (r *InMemoryMeetingRepository) FindAll(_ context.Context) ([]*domain.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.meetings), nil
}

// Delete removes the meeting. Deleting an unknown ID is a no-op.
func (r *InMemoryMeetingRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx := r.indexOf(id); idx >= 0 {
		r.meetings = slices.Delete(r.meetings, idx, idx+1)
	}
	return nil
}

func (r *InMemoryMeetingRepository) indexOf(id int) int {
	return slices.IndexFunc(r.meetings, func(m *domain.Meeting) bool {
		return m.ID() == id
	})
}
