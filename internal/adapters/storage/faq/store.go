package faq

import (
	"context"

	domain "fringe/internal/domain/faq"
)

// Store persists FAQ state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.FAQ, error)
	Save(ctx context.Context, value domain.FAQ) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.FAQ, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Section       string
	PublishedOnly bool
	Limit         int
	Offset        int
}
