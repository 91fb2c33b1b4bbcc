package ports

import (
	"context"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

// ListFilter carries the common query parameters for paginated listings.
// CreatedBy is enforced by the service layer for employee callers.
type ListFilter struct {
	CreatedBy string // empty = no filter (admin); non-empty = scoped to owner
	Page      int    // 1-based
	Limit     int    // max rows per page (capped at 100 by service)
}

// ClientUpdate holds the fields of a partial client update. Nil pointers mean
// "leave unchanged".
type ClientUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	Company    *string
	Website    *string
	Address    *string
	ClientType *domain.ClientType
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Client, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Client, int64, error)
	Update(ctx context.Context, id string, update ClientUpdate) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
