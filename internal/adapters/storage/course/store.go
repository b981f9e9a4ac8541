package course

import (
	"context"

	domain "fringe/internal/domain/course"
)

// Store persists Course state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Course, error)
	GetBySlug(ctx context.Context, slug string) (domain.Course, error)
	Save(ctx context.Context, value domain.Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Course, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	CategoryID string
	Status     string
	Level      string
	Search     string // matches title and slug
	Sort       string // allow-listed column name; empty means created_at
	Dir        string // "asc" or "desc"
	Limit      int
	Offset     int
}
