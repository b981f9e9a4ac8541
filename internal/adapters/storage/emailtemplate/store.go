package emailtemplate

import (
	"context"

	domain "fringe/internal/domain/emailtemplate"
)

// TemplateStore persists email Template state.
type TemplateStore interface {
	GetByID(ctx context.Context, id string) (domain.Template, error)
	GetByKey(ctx context.Context, key string) (domain.Template, error)
	Save(ctx context.Context, value domain.Template) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Template, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// TriggerStore persists email Trigger state.
type TriggerStore interface {
	GetByID(ctx context.Context, id string) (domain.Trigger, error)
	// ListByEvent returns enabled triggers bound to an event.
	ListByEvent(ctx context.Context, event string) ([]domain.Trigger, error)
	Save(ctx context.Context, value domain.Trigger) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Trigger, error)
}

// ListFilter carries filtering parameters for template List operations.
type ListFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}
