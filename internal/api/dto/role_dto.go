package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// PagePermissionPayload is one typed permission entry.
type PagePermissionPayload struct {
	Page  string `json:"page" validate:"required,max=64"`
	Level string `json:"level" validate:"omitempty,oneof=ReadOnly FullControl"`
}

// RoleRequest payload for create/update.
type RoleRequest struct {
	Name        string                  `json:"name" validate:"required,max=64"`
	Description string                  `json:"description" validate:"omitempty,max=512"`
	Permissions []PagePermissionPayload `json:"permissions" validate:"dive"`
}

// PermissionSet converts the payload to the domain form; a missing
// level keeps the legacy FullControl default.
func (r RoleRequest) PermissionSet() domain.PermissionSet {
	set := make(domain.PermissionSet, 0, len(r.Permissions))
	for _, perm := range r.Permissions {
		level := domain.PermissionLevel(perm.Level)
		if level == "" {
			level = domain.LevelFullControl
		}
		set = append(set, domain.PagePermission{Page: perm.Page, Level: level})
	}
	return set
}

// AssignUserRequest payload.
type AssignUserRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// CoverageRequest payload. An empty list means unrestricted coverage.
type CoverageRequest struct {
	CustomerIDs []string `json:"customer_ids" validate:"dive,uuid"`
}

// RoleResponse represents a role.
type RoleResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Permissions []PagePermissionPayload `json:"permissions"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// CoverageResponse represents a role's customer scope.
type CoverageResponse struct {
	AllCustomers bool     `json:"all_customers"`
	CustomerIDs  []string `json:"customer_ids,omitempty"`
}

// NewRoleResponse maps a domain role.
func NewRoleResponse(role *domain.Role) RoleResponse {
	perms := make([]PagePermissionPayload, 0, len(role.Permissions))
	for _, perm := range role.Permissions {
		perms = append(perms, PagePermissionPayload{Page: perm.Page, Level: string(perm.Level)})
	}
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: perms,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

// NewCoverageResponse maps a coverage scope.
func NewCoverageResponse(scope domain.CoverageScope) CoverageResponse {
	return CoverageResponse{
		AllCustomers: scope.AllCustomers,
		CustomerIDs:  scope.CustomerIDs,
	}
}
