package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// CreateProposalRequest payload.
type CreateProposalRequest struct {
	Title       string  `json:"title" validate:"required,max=256"`
	Description string  `json:"description" validate:"omitempty,max=8192"`
	CustomerID  string  `json:"customer_id" validate:"required,uuid"`
	ValueCents  int64   `json:"value_cents" validate:"gte=0"`
	OwnerID     *string `json:"owner_id" validate:"omitempty,uuid"`
}

// UpdateProposalRequest payload.
type UpdateProposalRequest struct {
	Title       string  `json:"title" validate:"omitempty,max=256"`
	Description string  `json:"description" validate:"omitempty,max=8192"`
	ValueCents  int64   `json:"value_cents" validate:"gte=0"`
	OwnerID     *string `json:"owner_id" validate:"omitempty,uuid"`
}

// UpdateProposalStatusRequest payload.
type UpdateProposalStatusRequest struct {
	Status domain.ProposalStatus `json:"status" validate:"required,oneof=DRAFT SUBMITTED APPROVED REJECTED"`
}

// UpdateProposalStageRequest payload.
type UpdateProposalStageRequest struct {
	Stage domain.ProposalStage `json:"stage" validate:"required,oneof=CONTACT NEGOTIATION WON LOST"`
}

// ProposalResponse represents a proposal.
type ProposalResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	CustomerID  string                `json:"customer_id"`
	Status      domain.ProposalStatus `json:"status"`
	Stage       domain.ProposalStage  `json:"stage"`
	ValueCents  int64                 `json:"value_cents"`
	OwnerID     *string               `json:"owner_id,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// NewProposalResponse maps a domain proposal.
func NewProposalResponse(proposal *domain.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:          proposal.ID,
		Title:       proposal.Title,
		Description: proposal.Description,
		CustomerID:  proposal.CustomerID,
		Status:      proposal.Status,
		Stage:       proposal.Stage,
		ValueCents:  proposal.ValueCents,
		OwnerID:     proposal.OwnerID,
		CreatedAt:   proposal.CreatedAt,
		UpdatedAt:   proposal.UpdatedAt,
	}
}
