package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// ProposalService coordinates pre-sales proposal workflows. Status
// (approval) and stage (funnel position) advance independently.
type ProposalService struct {
	proposals  repository.ProposalRepository
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// ProposalDependencies bundles collaborators for the proposal service.
type ProposalDependencies struct {
	ProposalRepo repository.ProposalRepository
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
}

// ProposalCreateInput describes proposal creation payload.
type ProposalCreateInput struct {
	Title       string
	Description string
	CustomerID  string
	ValueCents  int64
	OwnerID     *string
}

// NewProposalService constructs the service.
func NewProposalService(deps ProposalDependencies) *ProposalService {
	return &ProposalService{
		proposals:  deps.ProposalRepo,
		customers:  deps.CustomerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a proposal at Draft/Contact.
func (s *ProposalService) Create(ctx context.Context, actor string, input ProposalCreateInput) (*domain.Proposal, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.ValueCents < 0 {
		return nil, apperrors.NewValidationError("value must not be negative", nil)
	}
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("unknown customer", map[string]any{"customer_id": input.CustomerID})
		}
		return nil, err
	}

	proposal := &domain.Proposal{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		CustomerID:  input.CustomerID,
		Status:      domain.ProposalStatusDraft,
		Stage:       domain.ProposalStageContact,
		ValueCents:  input.ValueCents,
		OwnerID:     input.OwnerID,
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityCreated, "Proposal", proposal.ID, actor, map[string]any{
		"title":    proposal.Title,
		"customer": proposal.CustomerID,
	})
	return proposal, nil
}

// UpdateStatus advances the approval workflow.
func (s *ProposalService) UpdateStatus(ctx context.Context, actor, id string, next domain.ProposalStatus) (*domain.Proposal, error) {
	proposal, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ValidProposalStatusTransition(proposal.Status, next) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": proposal.Status,
			"to":   next,
		})
	}
	old := proposal.Status
	proposal.Status = next
	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Proposal", proposal.ID, actor, map[string]any{
		"old_status": old,
		"new_status": next,
	})
	return proposal, nil
}

// UpdateStage advances the funnel position.
func (s *ProposalService) UpdateStage(ctx context.Context, actor, id string, next domain.ProposalStage) (*domain.Proposal, error) {
	proposal, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ValidProposalStageTransition(proposal.Stage, next) {
		return nil, apperrors.NewValidationError("invalid stage transition", map[string]any{
			"from": proposal.Stage,
			"to":   next,
		})
	}
	old := proposal.Stage
	proposal.Stage = next
	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Proposal", proposal.ID, actor, map[string]any{
		"old_stage": old,
		"new_stage": next,
	})
	return proposal, nil
}

// Update edits descriptive fields.
func (s *ProposalService) Update(ctx context.Context, actor, id string, input ProposalCreateInput) (*domain.Proposal, error) {
	proposal, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		proposal.Title = title
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		proposal.Description = desc
	}
	if input.ValueCents > 0 {
		proposal.ValueCents = input.ValueCents
	}
	if input.OwnerID != nil {
		proposal.OwnerID = input.OwnerID
	}
	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Proposal", proposal.ID, actor, map[string]any{
		"title": proposal.Title,
	})
	return proposal, nil
}

// Get fetches a proposal by id.
func (s *ProposalService) Get(ctx context.Context, id string) (*domain.Proposal, error) {
	return s.proposals.GetByID(ctx, id)
}

// List returns proposals matching the filter.
func (s *ProposalService) List(ctx context.Context, filter repository.ProposalFilter) ([]domain.Proposal, error) {
	return s.proposals.ListWithFilter(ctx, filter)
}
