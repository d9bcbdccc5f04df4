package domain

import "time"

// DashboardMetric is a point-in-time projection over current table
// state. It is always re-derivable; persisting one is an optional side
// effect, never a source of truth.
type DashboardMetric struct {
	ID                string
	ComputedAt        time.Time
	ScopeRoleID       *string
	ScopeCustomerID   *string
	CasesByStatus     map[CaseStatus]int64
	CasesByPriority   map[CasePriority]int64
	ProposalsByStatus map[ProposalStatus]int64
	ProposalsByStage  map[ProposalStage]int64
	ProjectsByStatus  map[ProjectStatus]int64
	TotalCases        int64
	ResolvedCases     int64
	CasesWithSLA      int64
	CasesWithinSLA    int64
	ResolutionRate    float64
	SLAComplianceRate float64
}
