package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// CaseSLAStats carries the raw counts behind the dashboard rates.
type CaseSLAStats struct {
	Total       int64
	Resolved    int64
	WithSLA     int64
	WithinSLA   int64
	EvaluatedAt time.Time
}

// DashboardRepository runs the count/aggregate queries behind a metrics
// snapshot. A nil customerIDs slice means no customer scoping; an empty
// non-nil slice matches nothing (scope resolution happens in the
// service, which never passes an empty slice for an all-customers role).
type DashboardRepository interface {
	CountCasesByStatus(ctx context.Context, customerIDs []string) (map[domain.CaseStatus]int64, error)
	CountCasesByPriority(ctx context.Context, customerIDs []string) (map[domain.CasePriority]int64, error)
	CountProposalsByStatus(ctx context.Context, customerIDs []string) (map[domain.ProposalStatus]int64, error)
	CountProposalsByStage(ctx context.Context, customerIDs []string) (map[domain.ProposalStage]int64, error)
	CountProjectsByStatus(ctx context.Context, customerIDs []string) (map[domain.ProjectStatus]int64, error)
	CaseSLAStats(ctx context.Context, customerIDs []string, now time.Time) (CaseSLAStats, error)
	SaveSnapshot(ctx context.Context, metric *domain.DashboardMetric) error
}

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository returns a Postgres-backed implementation.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) CountCasesByStatus(ctx context.Context, customerIDs []string) (map[domain.CaseStatus]int64, error) {
	counts, err := r.groupCount(ctx, "cases", "status", customerIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[domain.CaseStatus]int64, len(counts))
	for key, count := range counts {
		result[domain.CaseStatus(key)] = count
	}
	return result, nil
}

func (r *dashboardRepository) CountCasesByPriority(ctx context.Context, customerIDs []string) (map[domain.CasePriority]int64, error) {
	counts, err := r.groupCount(ctx, "cases", "priority", customerIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[domain.CasePriority]int64, len(counts))
	for key, count := range counts {
		result[domain.CasePriority(key)] = count
	}
	return result, nil
}

func (r *dashboardRepository) CountProposalsByStatus(ctx context.Context, customerIDs []string) (map[domain.ProposalStatus]int64, error) {
	counts, err := r.groupCount(ctx, "proposals", "status", customerIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[domain.ProposalStatus]int64, len(counts))
	for key, count := range counts {
		result[domain.ProposalStatus(key)] = count
	}
	return result, nil
}

func (r *dashboardRepository) CountProposalsByStage(ctx context.Context, customerIDs []string) (map[domain.ProposalStage]int64, error) {
	counts, err := r.groupCount(ctx, "proposals", "stage", customerIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[domain.ProposalStage]int64, len(counts))
	for key, count := range counts {
		result[domain.ProposalStage(key)] = count
	}
	return result, nil
}

func (r *dashboardRepository) CountProjectsByStatus(ctx context.Context, customerIDs []string) (map[domain.ProjectStatus]int64, error) {
	counts, err := r.groupCount(ctx, "projects", "status", customerIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[domain.ProjectStatus]int64, len(counts))
	for key, count := range counts {
		result[domain.ProjectStatus(key)] = count
	}
	return result, nil
}

// groupCount runs SELECT col, COUNT(*) grouped by col, optionally
// scoped by customer. Table and column names are fixed by the callers
// above, never caller input.
func (r *dashboardRepository) groupCount(ctx context.Context, table, column string, customerIDs []string) (map[string]int64, error) {
	query := `SELECT ` + column + `, COUNT(*) FROM ` + table
	args := []any{}
	if customerIDs != nil {
		query += ` WHERE customer_id = ANY($1)`
		args = append(args, customerIDs)
	}
	query += ` GROUP BY ` + column

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		result[key] = count
	}
	return result, rows.Err()
}

func (r *dashboardRepository) CaseSLAStats(ctx context.Context, customerIDs []string, now time.Time) (CaseSLAStats, error) {
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE resolved_at IS NOT NULL),
               COUNT(*) FILTER (WHERE sla_deadline IS NOT NULL),
               COUNT(*) FILTER (WHERE sla_deadline IS NOT NULL
                   AND COALESCE(resolved_at, $1) <= sla_deadline)
        FROM cases`
	args := []any{now}
	if customerIDs != nil {
		query += ` WHERE customer_id = ANY($2)`
		args = append(args, customerIDs)
	}

	stats := CaseSLAStats{EvaluatedAt: now}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Resolved,
		&stats.WithSLA,
		&stats.WithinSLA,
	); err != nil {
		return CaseSLAStats{}, err
	}
	return stats, nil
}

// SaveSnapshot persists a computed metric for history. Snapshots are a
// convenience, never a source of truth.
func (r *dashboardRepository) SaveSnapshot(ctx context.Context, metric *domain.DashboardMetric) error {
	payload, err := json.Marshal(metric)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO dashboard_snapshots (computed_at, scope_role_id, scope_customer_id, payload)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		metric.ComputedAt,
		metric.ScopeRoleID,
		metric.ScopeCustomerID,
		payload,
	).Scan(&metric.ID)
}
