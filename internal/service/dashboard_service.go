package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
)

// DashboardService computes point-in-time metric snapshots over current
// table state. Snapshots are always re-derivable; persistence is an
// optional side effect.
type DashboardService struct {
	dashboards repository.DashboardRepository
	roles      repository.RoleRepository
	logger     *zap.Logger
	now        func() time.Time
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	DashboardRepo repository.DashboardRepository
	RoleRepo      repository.RoleRepository
	Logger        *zap.Logger
	Now           func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		dashboards: deps.DashboardRepo,
		roles:      deps.RoleRepo,
		logger:     deps.Logger,
		now:        now,
	}
}

// ComputeSnapshot aggregates counts within an optional scope. A role id
// scopes to the role's coverage; an all-customers coverage applies no
// filter at all. A customer id scopes to exactly that customer. Both
// derived rates guard division by zero by yielding 0.
func (s *DashboardService) ComputeSnapshot(ctx context.Context, roleID, customerID *string, persist bool) (*domain.DashboardMetric, error) {
	scope, err := s.resolveScope(ctx, roleID, customerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	metric := &domain.DashboardMetric{
		ComputedAt:      now,
		ScopeRoleID:     roleID,
		ScopeCustomerID: customerID,
	}

	if metric.CasesByStatus, err = s.dashboards.CountCasesByStatus(ctx, scope); err != nil {
		return nil, err
	}
	if metric.CasesByPriority, err = s.dashboards.CountCasesByPriority(ctx, scope); err != nil {
		return nil, err
	}
	if metric.ProposalsByStatus, err = s.dashboards.CountProposalsByStatus(ctx, scope); err != nil {
		return nil, err
	}
	if metric.ProposalsByStage, err = s.dashboards.CountProposalsByStage(ctx, scope); err != nil {
		return nil, err
	}
	if metric.ProjectsByStatus, err = s.dashboards.CountProjectsByStatus(ctx, scope); err != nil {
		return nil, err
	}

	stats, err := s.dashboards.CaseSLAStats(ctx, scope, now)
	if err != nil {
		return nil, err
	}
	metric.TotalCases = stats.Total
	metric.ResolvedCases = stats.Resolved
	metric.CasesWithSLA = stats.WithSLA
	metric.CasesWithinSLA = stats.WithinSLA
	metric.ResolutionRate = safeRate(stats.Resolved, stats.Total)
	metric.SLAComplianceRate = safeRate(stats.WithinSLA, stats.WithSLA)

	if persist {
		if err := s.dashboards.SaveSnapshot(ctx, metric); err != nil {
			s.logger.Warn("snapshot persistence failed", zap.Error(err))
		}
	}
	return metric, nil
}

// resolveScope returns nil for "no customer filter". The empty coverage
// row set means all customers, so an AllCustomers scope maps to nil,
// never to an empty slice.
func (s *DashboardService) resolveScope(ctx context.Context, roleID, customerID *string) ([]string, error) {
	if roleID != nil {
		if _, err := s.roles.GetByID(ctx, *roleID); err != nil {
			return nil, err
		}
		scope, err := s.roles.Coverage(ctx, *roleID)
		if err != nil {
			return nil, err
		}
		if scope.AllCustomers {
			return nil, nil
		}
		return scope.CustomerIDs, nil
	}
	if customerID != nil {
		return []string{*customerID}, nil
	}
	return nil, nil
}

func safeRate(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
