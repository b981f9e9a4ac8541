package review

import (
	"context"
	"time"

	domain "fringe/internal/domain/review"
)

// Store persists Review state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Review, error)
	Save(ctx context.Context, value domain.Review) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Review, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	CountSubmittedBetween(ctx context.Context, from, to time.Time) (int, error)
	// AverageApprovedRating returns the mean rating over approved reviews,
	// or 0 when none exist.
	AverageApprovedRating(ctx context.Context) (float64, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status    string
	Subject   string
	SubjectID string
	Limit     int
	Offset    int
}
