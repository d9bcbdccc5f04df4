// Package sla computes service-level deadlines and breach flags for
// support cases. All functions are pure; threshold lookup happens in the
// calling service.
package sla

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// Deadline computes the resolution deadline for a case created at the
// given time. A nil threshold means no SLA is tracked for the priority
// and yields a nil deadline, which is distinct from "deadline met".
func Deadline(createdAt time.Time, threshold *domain.SLAThreshold) *time.Time {
	if threshold == nil || !threshold.Active {
		return nil
	}
	deadline := createdAt.Add(threshold.ResolutionWindow())
	return &deadline
}

// ResponseDue computes the first-response deadline from the same
// threshold row, independent of the resolution deadline.
func ResponseDue(createdAt time.Time, threshold *domain.SLAThreshold) *time.Time {
	if threshold == nil || !threshold.Active {
		return nil
	}
	due := createdAt.Add(threshold.ResponseWindow())
	return &due
}

// Breached reports whether the moment is strictly after the deadline.
// A nil deadline never breaches: untracked is not the same as met, and
// callers that need the distinction must check for nil themselves.
func Breached(deadline *time.Time, at time.Time) bool {
	if deadline == nil {
		return false
	}
	return at.After(*deadline)
}

// ResolutionBreached evaluates a case against its resolution deadline,
// using the resolution time when resolved and the current time while
// the case is still open.
func ResolutionBreached(deadline *time.Time, resolvedAt *time.Time, now time.Time) bool {
	if resolvedAt != nil {
		return Breached(deadline, *resolvedAt)
	}
	return Breached(deadline, now)
}

// ResponseBreached evaluates the first-response deadline the same way.
func ResponseBreached(responseDue *time.Time, firstResponseAt *time.Time, now time.Time) bool {
	if firstResponseAt != nil {
		return Breached(responseDue, *firstResponseAt)
	}
	return Breached(responseDue, now)
}
