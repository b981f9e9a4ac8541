package audit

import (
	"context"
	"time"

	domain "fringe/internal/domain/audit"
)

// Store persists audit events. Events are append-only; the only
// deletion path is the retention prune.
type Store interface {
	Record(ctx context.Context, event domain.Event) error
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	// DeleteOlderThan removes events before the cutoff and returns how
	// many rows were pruned.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Category domain.Category
	Action   domain.Action
	ActorID  string
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}
