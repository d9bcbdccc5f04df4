package domain

import "time"

// CaseStatus enumerates lifecycle states for support cases.
type CaseStatus string

const (
	CaseStatusNew             CaseStatus = "NEW"
	CaseStatusInProgress      CaseStatus = "IN_PROGRESS"
	CaseStatusWaitingCustomer CaseStatus = "WAITING_CUSTOMER"
	CaseStatusResolved        CaseStatus = "RESOLVED"
	CaseStatusClosed          CaseStatus = "CLOSED"
	CaseStatusCancelled       CaseStatus = "CANCELLED"
)

// CasePriority enumerates SLA urgency.
type CasePriority string

const (
	CasePriorityLow      CasePriority = "LOW"
	CasePriorityMedium   CasePriority = "MEDIUM"
	CasePriorityHigh     CasePriority = "HIGH"
	CasePriorityCritical CasePriority = "CRITICAL"
)

// ValidCasePriority reports whether the value is a known priority.
func ValidCasePriority(p CasePriority) bool {
	switch p {
	case CasePriorityLow, CasePriorityMedium, CasePriorityHigh, CasePriorityCritical:
		return true
	}
	return false
}

// Case is the aggregate for customer support requests. SLADeadline and
// SLAResponseDue are derived from the active threshold for the case
// priority and recomputed whenever the priority changes.
type Case struct {
	ID              string
	Title           string
	Description     string
	Status          CaseStatus
	Priority        CasePriority
	CustomerID      string
	SystemID        *string
	ComponentID     *string
	SiteID          *string
	OrderID         *string
	AssigneeID      *string
	FirstResponseAt *time.Time
	ResolvedAt      *time.Time
	SLADeadline     *time.Time
	SLAResponseDue  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var allowedCaseTransitions = map[CaseStatus][]CaseStatus{
	CaseStatusNew:             {CaseStatusInProgress, CaseStatusCancelled},
	CaseStatusInProgress:      {CaseStatusWaitingCustomer, CaseStatusResolved, CaseStatusCancelled},
	CaseStatusWaitingCustomer: {CaseStatusInProgress, CaseStatusResolved, CaseStatusCancelled},
	CaseStatusResolved:        {CaseStatusClosed, CaseStatusInProgress},
	CaseStatusClosed:          {},
	CaseStatusCancelled:       {},
}

// ValidCaseTransition reports whether a status change is allowed.
func ValidCaseTransition(current, next CaseStatus) bool {
	for _, candidate := range allowedCaseTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
