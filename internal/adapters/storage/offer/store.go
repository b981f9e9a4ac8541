package offer

import (
	"context"
	"time"

	domain "fringe/internal/domain/offer"
)

// Store persists Offer state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Offer, error)
	GetByCode(ctx context.Context, code string) (domain.Offer, error)
	Save(ctx context.Context, value domain.Offer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Offer, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	// DeactivateExpired flips active offers whose window ended before now
	// to inactive, returning how many rows changed.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Target     string
	ActiveOnly bool
	Limit      int
	Offset     int
}
