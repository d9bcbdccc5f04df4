package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/authz"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// RoleService coordinates role, assignment and coverage workflows.
type RoleService struct {
	roles      repository.RoleRepository
	users      repository.UserRepository
	customers  repository.CustomerRepository
	engine     *authz.Engine
	dispatcher events.Dispatcher
}

// RoleDependencies bundles collaborators for the role service.
type RoleDependencies struct {
	RoleRepo     repository.RoleRepository
	UserRepo     repository.UserRepository
	CustomerRepo repository.CustomerRepository
	Engine       *authz.Engine
	Dispatcher   events.Dispatcher
}

// RoleInput describes role create/update payload. Permissions arrive as
// a typed list; duplicate pages are stored as-is and resolve first-wins
// at lookup (see DESIGN.md for the open question on write-time checks).
type RoleInput struct {
	Name        string
	Description string
	Permissions domain.PermissionSet
}

// NewRoleService constructs the service.
func NewRoleService(deps RoleDependencies) *RoleService {
	return &RoleService{
		roles:      deps.RoleRepo,
		users:      deps.UserRepo,
		customers:  deps.CustomerRepo,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
	}
}

// Create registers a new role.
func (s *RoleService) Create(ctx context.Context, actor string, input RoleInput) (*domain.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if existing, err := s.roles.GetByName(ctx, name); err == nil && existing != nil {
		return nil, apperrors.NewConflict("role name already exists", map[string]any{"name": name})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	role := &domain.Role{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Permissions: input.Permissions,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityCreated, "Role", role.ID, actor, map[string]any{
		"name":        role.Name,
		"permissions": domain.FormatPermissionString(role.Permissions),
	})
	return role, nil
}

// Update edits a role and drops cached permissions for its members.
func (s *RoleService) Update(ctx context.Context, actor, id string, input RoleInput) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		role.Name = name
	}
	role.Description = strings.TrimSpace(input.Description)
	if input.Permissions != nil {
		role.Permissions = input.Permissions
	}
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, err
	}
	s.invalidateMembers(ctx, role.ID)
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Role", role.ID, actor, map[string]any{
		"name":        role.Name,
		"permissions": domain.FormatPermissionString(role.Permissions),
	})
	return role, nil
}

// Delete removes a role; assignments and coverage cascade at the schema
// level. Member caches are invalidated before the delete so no stale
// grant survives.
func (s *RoleService) Delete(ctx context.Context, actor, id string) error {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.invalidateMembers(ctx, role.ID)
	if err := s.roles.Delete(ctx, role.ID); err != nil {
		return err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityDeleted, "Role", role.ID, actor, map[string]any{
		"name": role.Name,
	})
	return nil
}

// Get fetches a role by id.
func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return s.roles.GetByID(ctx, id)
}

// List returns a page of roles.
func (s *RoleService) List(ctx context.Context, limit, offset int) ([]domain.Role, error) {
	return s.roles.List(ctx, limit, offset)
}

// AssignUser adds a user to a role.
func (s *RoleService) AssignUser(ctx context.Context, actor, roleID, userID string) error {
	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.roles.AssignUser(ctx, role.ID, user.ID); err != nil {
		return err
	}
	s.engine.Invalidate(ctx, user.Username)
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Role", role.ID, actor, map[string]any{
		"assigned_user": user.Username,
	})
	return nil
}

// UnassignUser removes a user from a role.
func (s *RoleService) UnassignUser(ctx context.Context, actor, roleID, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.roles.UnassignUser(ctx, roleID, user.ID); err != nil {
		return err
	}
	s.engine.Invalidate(ctx, user.Username)
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Role", roleID, actor, map[string]any{
		"unassigned_user": user.Username,
	})
	return nil
}

// Members lists users assigned to a role.
func (s *RoleService) Members(ctx context.Context, roleID string) ([]domain.User, error) {
	return s.roles.UsersForRole(ctx, roleID)
}

// Coverage returns the role's customer scope.
func (s *RoleService) Coverage(ctx context.Context, roleID string) (domain.CoverageScope, error) {
	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		return domain.CoverageScope{}, err
	}
	return s.roles.Coverage(ctx, roleID)
}

// SetCoverage replaces the role's customer scope. An empty id list
// stores no rows, which decodes back to the all-customers scope.
func (s *RoleService) SetCoverage(ctx context.Context, actor, roleID string, customerIDs []string) (domain.CoverageScope, error) {
	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		return domain.CoverageScope{}, err
	}
	for _, customerID := range customerIDs {
		if _, err := s.customers.GetByID(ctx, customerID); err != nil {
			if err == pgx.ErrNoRows {
				return domain.CoverageScope{}, apperrors.NewValidationError("unknown customer", map[string]any{"customer_id": customerID})
			}
			return domain.CoverageScope{}, err
		}
	}
	if err := s.roles.SetCoverage(ctx, role.ID, customerIDs); err != nil {
		return domain.CoverageScope{}, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Role", role.ID, actor, map[string]any{
		"coverage_customers": customerIDs,
	})
	return domain.SpecificCustomersScope(customerIDs), nil
}

func (s *RoleService) invalidateMembers(ctx context.Context, roleID string) {
	usernames, err := s.roles.UsernamesForRole(ctx, roleID)
	if err != nil {
		return
	}
	s.engine.Invalidate(ctx, usernames...)
}
