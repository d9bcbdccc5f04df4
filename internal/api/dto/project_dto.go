package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// ProjectRequest payload for create/update.
type ProjectRequest struct {
	Name        string     `json:"name" validate:"omitempty,max=256"`
	Description string     `json:"description" validate:"omitempty,max=8192"`
	CustomerID  string     `json:"customer_id" validate:"omitempty,uuid"`
	ManagerID   *string    `json:"manager_id" validate:"omitempty,uuid"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// UpdateProjectStatusRequest payload.
type UpdateProjectStatusRequest struct {
	Status domain.ProjectStatus `json:"status" validate:"required,oneof=PLANNED ACTIVE ON_HOLD COMPLETED CANCELLED"`
}

// ProjectResponse represents a project.
type ProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	CustomerID  string               `json:"customer_id"`
	Status      domain.ProjectStatus `json:"status"`
	ManagerID   *string              `json:"manager_id,omitempty"`
	StartsAt    *time.Time           `json:"starts_at,omitempty"`
	EndsAt      *time.Time           `json:"ends_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CustomerID:  project.CustomerID,
		Status:      project.Status,
		ManagerID:   project.ManagerID,
		StartsAt:    project.StartsAt,
		EndsAt:      project.EndsAt,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
