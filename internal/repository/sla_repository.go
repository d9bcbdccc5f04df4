package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// SLARepository persists per-priority SLA threshold rows.
type SLARepository interface {
	Create(ctx context.Context, threshold *domain.SLAThreshold) error
	Update(ctx context.Context, threshold *domain.SLAThreshold) error
	GetByID(ctx context.Context, id string) (*domain.SLAThreshold, error)
	GetActiveByPriority(ctx context.Context, priority domain.CasePriority) (*domain.SLAThreshold, error)
	List(ctx context.Context) ([]domain.SLAThreshold, error)
	DeactivateByPriority(ctx context.Context, priority domain.CasePriority) error
}

type slaRepository struct {
	pool *pgxpool.Pool
}

// NewSLARepository returns a Postgres-backed implementation.
func NewSLARepository(pool *pgxpool.Pool) SLARepository {
	return &slaRepository{pool: pool}
}

const slaColumns = `id, priority, response_hours, resolution_hours, active, created_at, updated_at`

func (r *slaRepository) Create(ctx context.Context, threshold *domain.SLAThreshold) error {
	const query = `
        INSERT INTO sla_thresholds (priority, response_hours, resolution_hours, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		threshold.Priority,
		threshold.ResponseHours,
		threshold.ResolutionHours,
		threshold.Active,
	).Scan(&threshold.ID, &threshold.CreatedAt, &threshold.UpdatedAt)
}

func (r *slaRepository) Update(ctx context.Context, threshold *domain.SLAThreshold) error {
	const query = `
        UPDATE sla_thresholds SET priority=$1, response_hours=$2, resolution_hours=$3, active=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		threshold.Priority,
		threshold.ResponseHours,
		threshold.ResolutionHours,
		threshold.Active,
		threshold.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *slaRepository) GetByID(ctx context.Context, id string) (*domain.SLAThreshold, error) {
	query := `SELECT ` + slaColumns + ` FROM sla_thresholds WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

// GetActiveByPriority returns nil, nil when no active row exists for
// the priority: callers treat that as "no SLA tracked", never as an
// error.
func (r *slaRepository) GetActiveByPriority(ctx context.Context, priority domain.CasePriority) (*domain.SLAThreshold, error) {
	query := `SELECT ` + slaColumns + ` FROM sla_thresholds WHERE priority=$1 AND active=TRUE`
	threshold, err := r.fetchSingle(ctx, query, priority)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return threshold, err
}

func (r *slaRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.SLAThreshold, error) {
	var threshold domain.SLAThreshold
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&threshold.ID,
		&threshold.Priority,
		&threshold.ResponseHours,
		&threshold.ResolutionHours,
		&threshold.Active,
		&threshold.CreatedAt,
		&threshold.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &threshold, nil
}

func (r *slaRepository) List(ctx context.Context) ([]domain.SLAThreshold, error) {
	query := `SELECT ` + slaColumns + ` FROM sla_thresholds ORDER BY priority, active DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SLAThreshold
	for rows.Next() {
		var threshold domain.SLAThreshold
		if err := rows.Scan(
			&threshold.ID,
			&threshold.Priority,
			&threshold.ResponseHours,
			&threshold.ResolutionHours,
			&threshold.Active,
			&threshold.CreatedAt,
			&threshold.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, threshold)
	}
	return result, rows.Err()
}

func (r *slaRepository) DeactivateByPriority(ctx context.Context, priority domain.CasePriority) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sla_thresholds SET active=FALSE, updated_at=NOW() WHERE priority=$1 AND active=TRUE`,
		priority)
	return err
}
