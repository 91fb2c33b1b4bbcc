package ports

import (
	"context"
	"time"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

// CreateProjectInput carries all data needed to create a project.
type CreateProjectInput struct {
	Name           string
	Description    string
	ProjectType    string
	Status         string
	ClientID       string
	Technologies   []string
	StartDate      time.Time
	EndDate        *time.Time
	Budget         *float64
	HourlyRate     *float64
	EstimatedHours *float64
}

// UpdateProjectInput mirrors CreateProjectInput with optional fields for
// partial updates.
type UpdateProjectInput struct {
	Name           *string
	Description    *string
	ProjectType    *string
	Status         *string
	ClientID       *string
	Technologies   *[]string
	StartDate      *time.Time
	EndDate        *time.Time
	Budget         *float64
	HourlyRate     *float64
	EstimatedHours *float64
}

// ProjectView is a project with its referenced client resolved, as returned
// by read operations.
type ProjectView struct {
	Project *domain.Project
	Client  *domain.Client // nil when the project has no client reference
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*ProjectView, error)
	List(ctx context.Context, actor domain.Actor, page, limit int) (*ListResult[*ProjectView], error)
	Update(ctx context.Context, actor domain.Actor, id string, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
