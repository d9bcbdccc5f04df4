package domain

import "time"

// User is an operator identity. Authentication happens outside this
// service; users are matched by the externally resolved username.
type User struct {
	ID          string
	Username    string
	DisplayName string
	Language    string
	Active      bool
	Roles       []Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoleAssignment joins a user to a role.
type RoleAssignment struct {
	UserID     string
	RoleID     string
	AssignedAt time.Time
}
