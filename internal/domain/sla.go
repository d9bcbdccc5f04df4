package domain

import "time"

// SLAThreshold configures per-priority response and resolution windows.
// Zero hours is legal and means "due immediately". At most one active
// row may exist per priority.
type SLAThreshold struct {
	ID              string
	Priority        CasePriority
	ResponseHours   int
	ResolutionHours int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ResponseWindow returns the response window as a duration.
func (t SLAThreshold) ResponseWindow() time.Duration {
	return time.Duration(t.ResponseHours) * time.Hour
}

// ResolutionWindow returns the resolution window as a duration.
func (t SLAThreshold) ResolutionWindow() time.Duration {
	return time.Duration(t.ResolutionHours) * time.Hour
}
