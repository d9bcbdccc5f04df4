package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=64"`
	DisplayName string `json:"display_name" validate:"required,max=128"`
	Language    string `json:"language" validate:"omitempty,bcp47_language_tag"`
}

// UpdateUserRequest payload.
type UpdateUserRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=128"`
	Language    string `json:"language" validate:"omitempty,bcp47_language_tag"`
	Active      *bool  `json:"active"`
}

// UserResponse represents an operator user.
type UserResponse struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	Language    string         `json:"language"`
	Active      bool           `json:"active"`
	Roles       []RoleResponse `json:"roles,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Language:    user.Language,
		Active:      user.Active,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	for i := range user.Roles {
		resp.Roles = append(resp.Roles, NewRoleResponse(&user.Roles[i]))
	}
	return resp
}
