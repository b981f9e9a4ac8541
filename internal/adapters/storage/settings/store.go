package settings

import (
	"context"

	domain "fringe/internal/domain/settings"
)

// Store persists site settings.
type Store interface {
	Get(ctx context.Context, key string) (domain.Setting, error)
	All(ctx context.Context) ([]domain.Setting, error)
	Upsert(ctx context.Context, value domain.Setting) error
	// UpsertMany writes several settings in one transaction.
	UpsertMany(ctx context.Context, values []domain.Setting) error
}
