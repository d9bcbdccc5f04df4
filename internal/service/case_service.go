package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/sla"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// CaseService coordinates support case workflows, including derived SLA
// deadlines.
type CaseService struct {
	cases      repository.CaseRepository
	customers  repository.CustomerRepository
	users      repository.UserRepository
	thresholds repository.SLARepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// CaseDependencies bundles collaborators for the case service.
type CaseDependencies struct {
	CaseRepo     repository.CaseRepository
	CustomerRepo repository.CustomerRepository
	UserRepo     repository.UserRepository
	SLARepo      repository.SLARepository
	Dispatcher   events.Dispatcher
	Now          func() time.Time
}

// CaseCreateInput describes case creation payload.
type CaseCreateInput struct {
	Title       string
	Description string
	Priority    domain.CasePriority
	CustomerID  string
	SystemID    *string
	ComponentID *string
	SiteID      *string
	OrderID     *string
	AssigneeID  *string
}

// CaseUpdateInput describes mutable case fields outside the status and
// priority workflows.
type CaseUpdateInput struct {
	Title       string
	Description string
	SystemID    *string
	ComponentID *string
	SiteID      *string
	OrderID     *string
	AssigneeID  *string
}

// CaseSLAStatus reports the breach evaluation of a single case.
type CaseSLAStatus struct {
	Deadline           *time.Time
	ResponseDue        *time.Time
	ResolutionBreached bool
	ResponseBreached   bool
	Tracked            bool
}

// NewCaseService constructs the service.
func NewCaseService(deps CaseDependencies) *CaseService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &CaseService{
		cases:      deps.CaseRepo,
		customers:  deps.CustomerRepo,
		users:      deps.UserRepo,
		thresholds: deps.SLARepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// Create opens a new case and derives its SLA deadlines from the active
// threshold for the priority. No active threshold means the case is not
// SLA-tracked.
func (s *CaseService) Create(ctx context.Context, actor string, input CaseCreateInput) (*domain.Case, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.Priority == "" {
		input.Priority = domain.CasePriorityMedium
	}
	if !domain.ValidCasePriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("unknown customer", map[string]any{"customer_id": input.CustomerID})
		}
		return nil, err
	}
	if input.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *input.AssigneeID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("unknown assignee", map[string]any{"assignee_id": *input.AssigneeID})
			}
			return nil, err
		}
	}

	c := &domain.Case{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.CaseStatusNew,
		Priority:    input.Priority,
		CustomerID:  input.CustomerID,
		SystemID:    input.SystemID,
		ComponentID: input.ComponentID,
		SiteID:      input.SiteID,
		OrderID:     input.OrderID,
		AssigneeID:  input.AssigneeID,
	}

	createdAt := s.now()
	threshold, err := s.thresholds.GetActiveByPriority(ctx, c.Priority)
	if err != nil {
		return nil, err
	}
	c.SLADeadline = sla.Deadline(createdAt, threshold)
	c.SLAResponseDue = sla.ResponseDue(createdAt, threshold)

	if err := s.cases.Create(ctx, c); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityCreated, "Case", c.ID, actor, map[string]any{
		"title":    c.Title,
		"priority": c.Priority,
		"customer": c.CustomerID,
	})
	return c, nil
}

// Update edits descriptive fields and references.
func (s *CaseService) Update(ctx context.Context, actor, id string, input CaseUpdateInput) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		c.Title = title
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		c.Description = desc
	}
	c.SystemID = input.SystemID
	c.ComponentID = input.ComponentID
	c.SiteID = input.SiteID
	c.OrderID = input.OrderID
	if input.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *input.AssigneeID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("unknown assignee", map[string]any{"assignee_id": *input.AssigneeID})
			}
			return nil, err
		}
		c.AssigneeID = input.AssigneeID
	}
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Case", c.ID, actor, map[string]any{
		"title": c.Title,
	})
	return c, nil
}

// UpdateStatus advances the case through its state machine. Entering
// RESOLVED stamps resolved-at; reopening clears it.
func (s *CaseService) UpdateStatus(ctx context.Context, actor, id string, next domain.CaseStatus) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ValidCaseTransition(c.Status, next) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": c.Status,
			"to":   next,
		})
	}
	old := c.Status
	c.Status = next
	switch next {
	case domain.CaseStatusResolved:
		now := s.now()
		c.ResolvedAt = &now
	case domain.CaseStatusInProgress:
		if old == domain.CaseStatusResolved {
			c.ResolvedAt = nil
		}
	}
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Case", c.ID, actor, map[string]any{
		"old_status": old,
		"new_status": next,
	})
	return c, nil
}

// UpdatePriority changes urgency and recomputes the SLA deadlines from
// the case creation time, so the derived deadline never silently
// diverges from the threshold table.
func (s *CaseService) UpdatePriority(ctx context.Context, actor, id string, priority domain.CasePriority) (*domain.Case, error) {
	if !domain.ValidCasePriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	old := c.Priority
	c.Priority = priority

	threshold, err := s.thresholds.GetActiveByPriority(ctx, priority)
	if err != nil {
		return nil, err
	}
	c.SLADeadline = sla.Deadline(c.CreatedAt, threshold)
	c.SLAResponseDue = sla.ResponseDue(c.CreatedAt, threshold)

	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Case", c.ID, actor, map[string]any{
		"old_priority": old,
		"new_priority": priority,
	})
	return c, nil
}

// MarkFirstResponse stamps the first staff response once; later calls
// are no-ops.
func (s *CaseService) MarkFirstResponse(ctx context.Context, actor, id string) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.FirstResponseAt != nil {
		return c, nil
	}
	now := s.now()
	c.FirstResponseAt = &now
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Case", c.ID, actor, map[string]any{
		"first_response_at": now,
	})
	return c, nil
}

// Get fetches a case by id.
func (s *CaseService) Get(ctx context.Context, id string) (*domain.Case, error) {
	return s.cases.GetByID(ctx, id)
}

// List returns cases matching the filter.
func (s *CaseService) List(ctx context.Context, filter repository.CaseFilter) ([]domain.Case, error) {
	return s.cases.ListWithFilter(ctx, filter)
}

// SLAStatus evaluates breach flags for one case at the current time.
// Response and resolution breaches are independent evaluations.
func (s *CaseService) SLAStatus(c *domain.Case) CaseSLAStatus {
	now := s.now()
	return CaseSLAStatus{
		Deadline:           c.SLADeadline,
		ResponseDue:        c.SLAResponseDue,
		Tracked:            c.SLADeadline != nil,
		ResolutionBreached: sla.ResolutionBreached(c.SLADeadline, c.ResolvedAt, now),
		ResponseBreached:   sla.ResponseBreached(c.SLAResponseDue, c.FirstResponseAt, now),
	}
}
