package outbox

import (
	"context"

	domain "fringe/internal/domain/outbox"
)

// Store persists outbox entries.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Save(ctx context.Context, value domain.Entry) error
	// ListPending returns retryable entries oldest first, up to limit.
	ListPending(ctx context.Context, limit int) ([]domain.Entry, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Entry, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}
