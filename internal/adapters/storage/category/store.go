package category

import (
	"context"

	domain "fringe/internal/domain/category"
)

// Store persists Category state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (domain.Category, error)
	Save(ctx context.Context, value domain.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Category, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Kind       string
	ActiveOnly bool
	Limit      int
	Offset     int
}
