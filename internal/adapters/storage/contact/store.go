package contact

import (
	"context"
	"time"

	domain "fringe/internal/domain/contact"
)

// Store persists contact Message state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Message, error)
	Save(ctx context.Context, value domain.Message) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Message, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	CountReceivedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string
	Search string // matches name, email and subject
	Limit  int
	Offset int
}
