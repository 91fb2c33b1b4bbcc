package ports

import (
	"context"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

// ActivityFilter narrows an activity listing. UserID empty = all users (admin).
type ActivityFilter struct {
	UserID string
	Page   int
	Limit  int
}

// ActivityRepository persists and lists audit records. Records are
// insert-only: there is deliberately no update or delete operation.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	List(ctx context.Context, filter ActivityFilter) ([]*domain.Activity, int64, error)
}
