package testimonial

import (
	"context"

	domain "fringe/internal/domain/testimonial"
)

// Store persists Testimonial state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Testimonial, error)
	Save(ctx context.Context, value domain.Testimonial) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Testimonial, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	ApprovedOnly bool
	FeaturedOnly bool
	Limit        int
	Offset       int
}
