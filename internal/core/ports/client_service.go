package ports

import (
	"context"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

// CreateClientInput carries all data needed to create a client.
type CreateClientInput struct {
	Name       string
	Email      string
	Phone      string
	Company    string
	Website    string
	Address    string
	ClientType string
}

// UpdateClientInput mirrors CreateClientInput with optional fields for
// partial updates.
type UpdateClientInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Company    *string
	Website    *string
	Address    *string
	ClientType *string
}

// ListResult is the generic paginated listing envelope.
type ListResult[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ClientService defines use-case operations for clients. The actor is used to
// enforce ownership: employees only see and touch records they created.
type ClientService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Client, error)
	List(ctx context.Context, actor domain.Actor, page, limit int) (*ListResult[*domain.Client], error)
	Update(ctx context.Context, actor domain.Actor, id string, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
