package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// DashboardResponse is a point-in-time metric snapshot.
type DashboardResponse struct {
	ComputedAt        time.Time        `json:"computed_at"`
	ScopeRoleID       *string          `json:"scope_role_id,omitempty"`
	ScopeCustomerID   *string          `json:"scope_customer_id,omitempty"`
	CasesByStatus     map[string]int64 `json:"cases_by_status"`
	CasesByPriority   map[string]int64 `json:"cases_by_priority"`
	ProposalsByStatus map[string]int64 `json:"proposals_by_status"`
	ProposalsByStage  map[string]int64 `json:"proposals_by_stage"`
	ProjectsByStatus  map[string]int64 `json:"projects_by_status"`
	TotalCases        int64            `json:"total_cases"`
	ResolvedCases     int64            `json:"resolved_cases"`
	CasesWithSLA      int64            `json:"cases_with_sla"`
	CasesWithinSLA    int64            `json:"cases_within_sla"`
	ResolutionRate    float64          `json:"resolution_rate"`
	SLAComplianceRate float64          `json:"sla_compliance_rate"`
}

// NewDashboardResponse maps a domain metric snapshot.
func NewDashboardResponse(metric *domain.DashboardMetric) DashboardResponse {
	return DashboardResponse{
		ComputedAt:        metric.ComputedAt,
		ScopeRoleID:       metric.ScopeRoleID,
		ScopeCustomerID:   metric.ScopeCustomerID,
		CasesByStatus:     stringKeys(metric.CasesByStatus),
		CasesByPriority:   stringKeys(metric.CasesByPriority),
		ProposalsByStatus: stringKeys(metric.ProposalsByStatus),
		ProposalsByStage:  stringKeys(metric.ProposalsByStage),
		ProjectsByStatus:  stringKeys(metric.ProjectsByStatus),
		TotalCases:        metric.TotalCases,
		ResolvedCases:     metric.ResolvedCases,
		CasesWithSLA:      metric.CasesWithSLA,
		CasesWithinSLA:    metric.CasesWithinSLA,
		ResolutionRate:    metric.ResolutionRate,
		SLAComplianceRate: metric.SLAComplianceRate,
	}
}

func stringKeys[K ~string](counts map[K]int64) map[string]int64 {
	out := make(map[string]int64, len(counts))
	for key, count := range counts {
		out[string(key)] = count
	}
	return out
}
