package domain

import "context"

// Repository defines the interface for meeting storage. Implementations own
// the ID sequence; an ID handed out by NextID is never handed out again.
type Repository interface {
	NextID(ctx context.Context) (int, error)
	Save(ctx context.Context, meeting *Meeting) error
	FindByID(ctx context.Context, id int) (*Meeting, error)
	FindAll(ctx context.Context) ([]*Meeting, error)
	Delete(ctx context.Context, id int) error
}
