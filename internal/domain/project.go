package domain

import "time"

// ProjectStatus enumerates delivery states.
type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "PLANNED"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// Project is a delivery engagement for a customer.
type Project struct {
	ID          string
	Name        string
	Description string
	CustomerID  string
	Status      ProjectStatus
	ManagerID   *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var allowedProjectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusPlanned:   {ProjectStatusActive, ProjectStatusCancelled},
	ProjectStatusActive:    {ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled},
	ProjectStatusOnHold:    {ProjectStatusActive, ProjectStatusCancelled},
	ProjectStatusCompleted: {},
	ProjectStatusCancelled: {},
}

// ValidProjectTransition reports whether a status change is allowed.
func ValidProjectTransition(current, next ProjectStatus) bool {
	for _, candidate := range allowedProjectTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
