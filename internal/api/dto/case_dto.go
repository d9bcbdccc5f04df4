package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/service"
)

// CreateCaseRequest payload.
type CreateCaseRequest struct {
	Title       string              `json:"title" validate:"required,max=256"`
	Description string              `json:"description" validate:"omitempty,max=8192"`
	Priority    domain.CasePriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	CustomerID  string              `json:"customer_id" validate:"required,uuid"`
	SystemID    *string             `json:"system_id" validate:"omitempty,uuid"`
	ComponentID *string             `json:"component_id" validate:"omitempty,uuid"`
	SiteID      *string             `json:"site_id" validate:"omitempty,uuid"`
	OrderID     *string             `json:"order_id" validate:"omitempty,uuid"`
	AssigneeID  *string             `json:"assignee_id" validate:"omitempty,uuid"`
}

// UpdateCaseRequest payload.
type UpdateCaseRequest struct {
	Title       string  `json:"title" validate:"omitempty,max=256"`
	Description string  `json:"description" validate:"omitempty,max=8192"`
	SystemID    *string `json:"system_id" validate:"omitempty,uuid"`
	ComponentID *string `json:"component_id" validate:"omitempty,uuid"`
	SiteID      *string `json:"site_id" validate:"omitempty,uuid"`
	OrderID     *string `json:"order_id" validate:"omitempty,uuid"`
	AssigneeID  *string `json:"assignee_id" validate:"omitempty,uuid"`
}

// UpdateCaseStatusRequest payload.
type UpdateCaseStatusRequest struct {
	Status domain.CaseStatus `json:"status" validate:"required,oneof=NEW IN_PROGRESS WAITING_CUSTOMER RESOLVED CLOSED CANCELLED"`
}

// UpdateCasePriorityRequest payload.
type UpdateCasePriorityRequest struct {
	Priority domain.CasePriority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
}

// CaseSLAResponse reports breach evaluation.
type CaseSLAResponse struct {
	Tracked            bool       `json:"tracked"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	ResponseDue        *time.Time `json:"response_due,omitempty"`
	ResolutionBreached bool       `json:"resolution_breached"`
	ResponseBreached   bool       `json:"response_breached"`
}

// CaseResponse represents a case.
type CaseResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Status          domain.CaseStatus   `json:"status"`
	Priority        domain.CasePriority `json:"priority"`
	CustomerID      string              `json:"customer_id"`
	SystemID        *string             `json:"system_id,omitempty"`
	ComponentID     *string             `json:"component_id,omitempty"`
	SiteID          *string             `json:"site_id,omitempty"`
	OrderID         *string             `json:"order_id,omitempty"`
	AssigneeID      *string             `json:"assignee_id,omitempty"`
	FirstResponseAt *time.Time          `json:"first_response_at,omitempty"`
	ResolvedAt      *time.Time          `json:"resolved_at,omitempty"`
	SLA             CaseSLAResponse     `json:"sla"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewCaseResponse maps a domain case plus its SLA evaluation.
func NewCaseResponse(c *domain.Case, slaStatus service.CaseSLAStatus) CaseResponse {
	return CaseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Status:          c.Status,
		Priority:        c.Priority,
		CustomerID:      c.CustomerID,
		SystemID:        c.SystemID,
		ComponentID:     c.ComponentID,
		SiteID:          c.SiteID,
		OrderID:         c.OrderID,
		AssigneeID:      c.AssigneeID,
		FirstResponseAt: c.FirstResponseAt,
		ResolvedAt:      c.ResolvedAt,
		SLA: CaseSLAResponse{
			Tracked:            slaStatus.Tracked,
			Deadline:           slaStatus.Deadline,
			ResponseDue:        slaStatus.ResponseDue,
			ResolutionBreached: slaStatus.ResolutionBreached,
			ResponseBreached:   slaStatus.ResponseBreached,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
