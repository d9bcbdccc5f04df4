package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// ProjectService coordinates delivery project workflows.
type ProjectService struct {
	projects   repository.ProjectRepository
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// ProjectDependencies bundles collaborators for the project service.
type ProjectDependencies struct {
	ProjectRepo  repository.ProjectRepository
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
}

// ProjectInput describes project create/update payload.
type ProjectInput struct {
	Name        string
	Description string
	CustomerID  string
	ManagerID   *string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:   deps.ProjectRepo,
		customers:  deps.CustomerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a project in Planned state.
func (s *ProjectService) Create(ctx context.Context, actor string, input ProjectInput) (*domain.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("unknown customer", map[string]any{"customer_id": input.CustomerID})
		}
		return nil, err
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, apperrors.NewValidationError("end date before start date", nil)
	}

	project := &domain.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CustomerID:  input.CustomerID,
		Status:      domain.ProjectStatusPlanned,
		ManagerID:   input.ManagerID,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityCreated, "Project", project.ID, actor, map[string]any{
		"name":     project.Name,
		"customer": project.CustomerID,
	})
	return project, nil
}

// Update edits descriptive fields.
func (s *ProjectService) Update(ctx context.Context, actor, id string, input ProjectInput) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		project.Name = name
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		project.Description = desc
	}
	if input.ManagerID != nil {
		project.ManagerID = input.ManagerID
	}
	if input.StartsAt != nil {
		project.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		project.EndsAt = input.EndsAt
	}
	if project.StartsAt != nil && project.EndsAt != nil && project.EndsAt.Before(*project.StartsAt) {
		return nil, apperrors.NewValidationError("end date before start date", nil)
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Project", project.ID, actor, map[string]any{
		"name": project.Name,
	})
	return project, nil
}

// UpdateStatus advances the project state machine.
func (s *ProjectService) UpdateStatus(ctx context.Context, actor, id string, next domain.ProjectStatus) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ValidProjectTransition(project.Status, next) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": project.Status,
			"to":   next,
		})
	}
	old := project.Status
	project.Status = next
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Project", project.ID, actor, map[string]any{
		"old_status": old,
		"new_status": next,
	})
	return project, nil
}

// Get fetches a project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// List returns projects matching the filter.
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	return s.projects.ListWithFilter(ctx, filter)
}
