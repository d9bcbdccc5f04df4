package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// SLAThresholdRequest payload for create/update. Zero hours is legal
// and means "due immediately".
type SLAThresholdRequest struct {
	Priority        domain.CasePriority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	ResponseHours   int                 `json:"response_hours" validate:"gte=0"`
	ResolutionHours int                 `json:"resolution_hours" validate:"gte=0"`
	Active          bool                `json:"active"`
}

// SLAThresholdResponse represents a threshold row.
type SLAThresholdResponse struct {
	ID              string              `json:"id"`
	Priority        domain.CasePriority `json:"priority"`
	ResponseHours   int                 `json:"response_hours"`
	ResolutionHours int                 `json:"resolution_hours"`
	Active          bool                `json:"active"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewSLAThresholdResponse maps a domain threshold.
func NewSLAThresholdResponse(threshold *domain.SLAThreshold) SLAThresholdResponse {
	return SLAThresholdResponse{
		ID:              threshold.ID,
		Priority:        threshold.Priority,
		ResponseHours:   threshold.ResponseHours,
		ResolutionHours: threshold.ResolutionHours,
		Active:          threshold.Active,
		CreatedAt:       threshold.CreatedAt,
		UpdatedAt:       threshold.UpdatedAt,
	}
}
