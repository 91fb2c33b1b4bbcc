package handler

import (
	"time"

	"github.com/devmanager/dev-manager/internal/core/ports"
)

type createProjectRequest struct {
	Name           string     `json:"name"            validate:"required"`
	Description    string     `json:"description"     validate:"required"`
	ProjectType    string     `json:"project_type"    validate:"required,oneof=web mobile desktop full-stack"`
	Status         string     `json:"status"          validate:"omitempty,oneof=pending in-progress completed on-hold"`
	ClientID       string     `json:"client_id"`
	Technologies   []string   `json:"technologies"`
	StartDate      time.Time  `json:"start_date"      validate:"required"`
	EndDate        *time.Time `json:"end_date"`
	Budget         *float64   `json:"budget"          validate:"omitempty,gt=0"`
	HourlyRate     *float64   `json:"hourly_rate"     validate:"omitempty,gt=0"`
	EstimatedHours *float64   `json:"estimated_hours" validate:"omitempty,gt=0"`
}

type updateProjectRequest struct {
	Name           *string     `json:"name"`
	Description    *string     `json:"description"`
	ProjectType    *string     `json:"project_type"    validate:"omitempty,oneof=web mobile desktop full-stack"`
	Status         *string     `json:"status"          validate:"omitempty,oneof=pending in-progress completed on-hold"`
	ClientID       *string     `json:"client_id"`
	Technologies   *[]string   `json:"technologies"`
	StartDate      *time.Time  `json:"start_date"`
	EndDate        *time.Time  `json:"end_date"`
	Budget         *float64    `json:"budget"          validate:"omitempty,gt=0"`
	HourlyRate     *float64    `json:"hourly_rate"     validate:"omitempty,gt=0"`
	EstimatedHours *float64    `json:"estimated_hours" validate:"omitempty,gt=0"`
}

// projectResponse is the full project view. Client carries the resolved
// referenced client on reads, and is omitted on create/update echoes.
type projectResponse struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ProjectType    string          `json:"project_type"`
	Status         string          `json:"status"`
	ClientID       string          `json:"client_id,omitempty"`
	Client         *clientResponse `json:"client,omitempty"`
	Technologies   []string        `json:"technologies"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	Budget         *float64        `json:"budget,omitempty"`
	HourlyRate     *float64        `json:"hourly_rate,omitempty"`
	EstimatedHours *float64        `json:"estimated_hours,omitempty"`
	CreatedBy      string          `json:"created_by"`
	UpdatedBy      string          `json:"updated_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type listProjectsResponse struct {
	Data       []projectResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toProjectResponse(view *ports.ProjectView) projectResponse {
	p := view.Project
	resp := projectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ProjectType:    string(p.ProjectType),
		Status:         string(p.Status),
		ClientID:       p.ClientID,
		Technologies:   p.Technologies,
		StartDate:      p.StartDate.UTC(),
		EndDate:        p.EndDate,
		Budget:         p.Budget,
		HourlyRate:     p.HourlyRate,
		EstimatedHours: p.EstimatedHours,
		CreatedBy:      p.CreatedBy,
		UpdatedBy:      p.UpdatedBy,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
	if view.Client != nil {
		cr := toClientResponse(view.Client)
		resp.Client = &cr
	}
	return resp
}
