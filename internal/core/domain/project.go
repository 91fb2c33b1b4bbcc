package domain

import "time"

// ProjectType is the delivery target of a project.
type ProjectType string

const (
	ProjectWeb       ProjectType = "web"
	ProjectMobile    ProjectType = "mobile"
	ProjectDesktop   ProjectType = "desktop"
	ProjectFullStack ProjectType = "full-stack"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	StatusPending    ProjectStatus = "pending"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusOnHold     ProjectStatus = "on-hold"
)

// ValidProjectType reports whether t is a known project type.
func ValidProjectType(t ProjectType) bool {
	switch t {
	case ProjectWeb, ProjectMobile, ProjectDesktop, ProjectFullStack:
		return true
	}
	return false
}

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Project is a unit of work, optionally tied to a Client.
type Project struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	ProjectType    ProjectType   `json:"project_type"`
	Status         ProjectStatus `json:"status"`
	ClientID       string        `json:"client_id,omitempty"`
	Technologies   []string      `json:"technologies"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        *time.Time    `json:"end_date,omitempty"`
	Budget         *float64      `json:"budget,omitempty"`
	HourlyRate     *float64      `json:"hourly_rate,omitempty"`
	EstimatedHours *float64      `json:"estimated_hours,omitempty"`
	CreatedBy      string        `json:"created_by"`
	UpdatedBy      string        `json:"updated_by,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
