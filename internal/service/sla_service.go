package service

import (
	"context"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/sla"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// SLAService manages threshold configuration. Activating a threshold
// deactivates any previous active row for the same priority (at most
// one active row per priority) and recomputes deadlines for open cases
// so derived fields stay consistent with the table.
type SLAService struct {
	thresholds repository.SLARepository
	cases      repository.CaseRepository
	dispatcher events.Dispatcher
}

// SLADependencies bundles collaborators for the SLA service.
type SLADependencies struct {
	SLARepo    repository.SLARepository
	CaseRepo   repository.CaseRepository
	Dispatcher events.Dispatcher
}

// SLAInput describes threshold configuration payload. Zero hours means
// "due immediately"; negative hours are rejected here at the boundary.
type SLAInput struct {
	Priority        domain.CasePriority
	ResponseHours   int
	ResolutionHours int
	Active          bool
}

// NewSLAService constructs the service.
func NewSLAService(deps SLADependencies) *SLAService {
	return &SLAService{
		thresholds: deps.SLARepo,
		cases:      deps.CaseRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create registers a threshold row.
func (s *SLAService) Create(ctx context.Context, actor string, input SLAInput) (*domain.SLAThreshold, error) {
	if err := validateSLAInput(input); err != nil {
		return nil, err
	}
	if input.Active {
		if err := s.thresholds.DeactivateByPriority(ctx, input.Priority); err != nil {
			return nil, err
		}
	}
	threshold := &domain.SLAThreshold{
		Priority:        input.Priority,
		ResponseHours:   input.ResponseHours,
		ResolutionHours: input.ResolutionHours,
		Active:          input.Active,
	}
	if err := s.thresholds.Create(ctx, threshold); err != nil {
		return nil, err
	}
	if threshold.Active {
		s.recomputeOpenCases(ctx, threshold.Priority)
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityCreated, "SlaThreshold", threshold.ID, actor, map[string]any{
		"priority":         threshold.Priority,
		"response_hours":   threshold.ResponseHours,
		"resolution_hours": threshold.ResolutionHours,
		"active":           threshold.Active,
	})
	return threshold, nil
}

// Update edits a threshold row, preserving the one-active-per-priority
// invariant.
func (s *SLAService) Update(ctx context.Context, actor, id string, input SLAInput) (*domain.SLAThreshold, error) {
	if err := validateSLAInput(input); err != nil {
		return nil, err
	}
	threshold, err := s.thresholds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Active && (!threshold.Active || threshold.Priority != input.Priority) {
		if err := s.thresholds.DeactivateByPriority(ctx, input.Priority); err != nil {
			return nil, err
		}
	}
	oldPriority := threshold.Priority
	threshold.Priority = input.Priority
	threshold.ResponseHours = input.ResponseHours
	threshold.ResolutionHours = input.ResolutionHours
	threshold.Active = input.Active
	if err := s.thresholds.Update(ctx, threshold); err != nil {
		return nil, err
	}
	s.recomputeOpenCases(ctx, threshold.Priority)
	if oldPriority != threshold.Priority {
		s.recomputeOpenCases(ctx, oldPriority)
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "SlaThreshold", threshold.ID, actor, map[string]any{
		"priority":         threshold.Priority,
		"response_hours":   threshold.ResponseHours,
		"resolution_hours": threshold.ResolutionHours,
		"active":           threshold.Active,
	})
	return threshold, nil
}

// List returns all threshold rows.
func (s *SLAService) List(ctx context.Context) ([]domain.SLAThreshold, error) {
	return s.thresholds.List(ctx)
}

// Get fetches a threshold by id.
func (s *SLAService) Get(ctx context.Context, id string) (*domain.SLAThreshold, error) {
	return s.thresholds.GetByID(ctx, id)
}

func validateSLAInput(input SLAInput) error {
	if !domain.ValidCasePriority(input.Priority) {
		return apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}
	if input.ResponseHours < 0 || input.ResolutionHours < 0 {
		return apperrors.NewValidationError("threshold hours must not be negative", map[string]any{
			"response_hours":   input.ResponseHours,
			"resolution_hours": input.ResolutionHours,
		})
	}
	return nil
}

// recomputeOpenCases refreshes derived deadlines after a threshold
// change. Failures are tolerated: the next priority change on a case
// recomputes again.
func (s *SLAService) recomputeOpenCases(ctx context.Context, priority domain.CasePriority) {
	threshold, err := s.thresholds.GetActiveByPriority(ctx, priority)
	if err != nil {
		return
	}
	open, err := s.cases.ListOpenByPriority(ctx, priority)
	if err != nil {
		return
	}
	for i := range open {
		c := &open[i]
		c.SLADeadline = sla.Deadline(c.CreatedAt, threshold)
		c.SLAResponseDue = sla.ResponseDue(c.CreatedAt, threshold)
		_ = s.cases.Update(ctx, c)
	}
}
