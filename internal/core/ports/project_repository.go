package ports

import (
	"context"
	"time"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

// ProjectUpdate holds the fields of a partial project update. Nil pointers
// mean "leave unchanged". Clearing an already-set end_date or client_id is
// not supported: a null in the payload reads the same as an absent field.
type ProjectUpdate struct {
	Name           *string
	Description    *string
	ProjectType    *domain.ProjectType
	Status         *domain.ProjectStatus
	ClientID       *string
	Technologies   *[]string
	StartDate      *time.Time
	EndDate        *time.Time
	Budget         *float64
	HourlyRate     *float64
	EstimatedHours *float64
	UpdatedBy      string
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Project, int64, error)
	Update(ctx context.Context, id string, update ProjectUpdate) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	// CountByClient reports how many projects reference the given client.
	CountByClient(ctx context.Context, clientID string) (int64, error)
}
