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

// UserService coordinates operator user workflows.
type UserService struct {
	users      repository.UserRepository
	engine     *authz.Engine
	dispatcher events.Dispatcher
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Engine     *authz.Engine
	Dispatcher events.Dispatcher
}

// UserCreateInput describes user creation payload.
type UserCreateInput struct {
	Username    string
	DisplayName string
	Language    string
}

// UserUpdateInput describes user update payload.
type UserUpdateInput struct {
	DisplayName string
	Language    string
	Active      *bool
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
	}
}

// Create registers a new operator user.
func (s *UserService) Create(ctx context.Context, actor string, input UserCreateInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperrors.NewValidationError("username required", nil)
	}
	if existing, err := s.users.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperrors.NewConflict("username already exists", map[string]any{"username": username})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	user := &domain.User{
		Username:    username,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Language:    input.Language,
		Active:      true,
	}
	if user.Language == "" {
		user.Language = "en"
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityCreated, "User", user.ID, actor, map[string]any{
		"username":     user.Username,
		"display_name": user.DisplayName,
	})
	return user, nil
}

// Update edits mutable user fields. Users are never hard-deleted:
// setting Active=false is the only retirement path.
func (s *UserService) Update(ctx context.Context, actor, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" {
		user.DisplayName = strings.TrimSpace(input.DisplayName)
	}
	if input.Language != "" {
		user.Language = input.Language
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.engine.Invalidate(ctx, user.Username)
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "User", user.ID, actor, map[string]any{
		"username": user.Username,
		"active":   user.Active,
	})
	return user, nil
}

// Deactivate soft-disables a user; every permission check denies from
// the next cache refresh onward.
func (s *UserService) Deactivate(ctx context.Context, actor, id string) (*domain.User, error) {
	active := false
	return s.Update(ctx, actor, id, UserUpdateInput{Active: &active})
}

// Get fetches a user with assigned roles.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.users.RolesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, limit, offset)
}
