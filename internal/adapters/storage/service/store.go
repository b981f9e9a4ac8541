package service

import (
	"context"

	domain "fringe/internal/domain/service"
)

// Store persists Service state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Service, error)
	GetBySlug(ctx context.Context, slug string) (domain.Service, error)
	Save(ctx context.Context, value domain.Service) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Service, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	CategoryID string
	Status     string
	Search     string // matches title and slug
	Sort       string // allow-listed column name; empty means created_at
	Dir        string // "asc" or "desc"
	Limit      int
	Offset     int
}
