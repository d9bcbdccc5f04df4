package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// CaseFilter captures case search parameters.
type CaseFilter struct {
	CustomerID  *string
	CustomerIDs []string
	AssigneeID  *string
	Statuses    []domain.CaseStatus
	Priorities  []domain.CasePriority
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// CaseRepository encapsulates case persistence.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	Update(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	ListWithFilter(ctx context.Context, filter CaseFilter) ([]domain.Case, error)
	ListOpenByPriority(ctx context.Context, priority domain.CasePriority) ([]domain.Case, error)
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository instantiates repository.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

const caseColumns = `id, title, description, status, priority, customer_id, system_id,
        component_id, site_id, order_id, assignee_id, first_response_at, resolved_at,
        sla_deadline, sla_response_due, created_at, updated_at`

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	const query = `
        INSERT INTO cases (title, description, status, priority, customer_id, system_id,
            component_id, site_id, order_id, assignee_id, sla_deadline, sla_response_due)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		c.Title,
		c.Description,
		c.Status,
		c.Priority,
		c.CustomerID,
		c.SystemID,
		c.ComponentID,
		c.SiteID,
		c.OrderID,
		c.AssigneeID,
		c.SLADeadline,
		c.SLAResponseDue,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *caseRepository) Update(ctx context.Context, c *domain.Case) error {
	const query = `
        UPDATE cases SET title=$1, description=$2, status=$3, priority=$4, system_id=$5,
            component_id=$6, site_id=$7, order_id=$8, assignee_id=$9, first_response_at=$10,
            resolved_at=$11, sla_deadline=$12, sla_response_due=$13, updated_at=NOW()
        WHERE id=$14`
	cmd, err := r.pool.Exec(ctx, query,
		c.Title,
		c.Description,
		c.Status,
		c.Priority,
		c.SystemID,
		c.ComponentID,
		c.SiteID,
		c.OrderID,
		c.AssigneeID,
		c.FirstResponseAt,
		c.ResolvedAt,
		c.SLADeadline,
		c.SLAResponseDue,
		c.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	query := fmt.Sprintf(`SELECT %s FROM cases WHERE id=$1`, caseColumns)
	var c domain.Case
	if err := r.pool.QueryRow(ctx, query, id).Scan(caseFields(&c)...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) ListWithFilter(ctx context.Context, filter CaseFilter) ([]domain.Case, error) {
	base := fmt.Sprintf(`SELECT %s FROM cases`, caseColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if len(filter.CustomerIDs) > 0 {
		args = append(args, filter.CustomerIDs)
		clauses = append(clauses, fmt.Sprintf("customer_id = ANY($%d)", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assignee_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

// ListOpenByPriority returns unresolved cases for one priority, used
// when SLA threshold changes require deadline recomputation.
func (r *caseRepository) ListOpenByPriority(ctx context.Context, priority domain.CasePriority) ([]domain.Case, error) {
	query := fmt.Sprintf(`SELECT %s FROM cases WHERE priority=$1 AND resolved_at IS NULL AND status NOT IN ($2, $3)`, caseColumns)

	rows, err := r.pool.Query(ctx, query, priority, domain.CaseStatusClosed, domain.CaseStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

func caseFields(c *domain.Case) []any {
	return []any{
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Status,
		&c.Priority,
		&c.CustomerID,
		&c.SystemID,
		&c.ComponentID,
		&c.SiteID,
		&c.OrderID,
		&c.AssigneeID,
		&c.FirstResponseAt,
		&c.ResolvedAt,
		&c.SLADeadline,
		&c.SLAResponseDue,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func scanCases(rows pgx.Rows) ([]domain.Case, error) {
	var result []domain.Case
	for rows.Next() {
		var c domain.Case
		if err := rows.Scan(caseFields(&c)...); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
