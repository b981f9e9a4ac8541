package subscriber

import (
	"context"
	"time"

	domain "fringe/internal/domain/subscriber"
)

// Store persists Subscriber state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (domain.Subscriber, error)
	Save(ctx context.Context, value domain.Subscriber) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Subscriber, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	CountSubscribedBetween(ctx context.Context, from, to time.Time) (int, error)
	// ListActive returns every active subscriber, for campaign sends.
	ListActive(ctx context.Context) ([]domain.Subscriber, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string
	Source string
	Search string // matches email and name
	Limit  int
	Offset int
}
