package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// ProposalFilter captures pre-sales search parameters.
type ProposalFilter struct {
	CustomerID  *string
	CustomerIDs []string
	Statuses    []domain.ProposalStatus
	Stages      []domain.ProposalStage
	Limit       int
	Offset      int
}

// ProposalRepository encapsulates proposal persistence.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *domain.Proposal) error
	Update(ctx context.Context, proposal *domain.Proposal) error
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	ListWithFilter(ctx context.Context, filter ProposalFilter) ([]domain.Proposal, error)
}

type proposalRepository struct {
	pool *pgxpool.Pool
}

// NewProposalRepository instantiates repository.
func NewProposalRepository(pool *pgxpool.Pool) ProposalRepository {
	return &proposalRepository{pool: pool}
}

const proposalColumns = `id, title, description, customer_id, status, stage, value_cents, owner_id, created_at, updated_at`

func (r *proposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	const query = `
        INSERT INTO proposals (title, description, customer_id, status, stage, value_cents, owner_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		proposal.Title,
		proposal.Description,
		proposal.CustomerID,
		proposal.Status,
		proposal.Stage,
		proposal.ValueCents,
		proposal.OwnerID,
	).Scan(&proposal.ID, &proposal.CreatedAt, &proposal.UpdatedAt)
}

func (r *proposalRepository) Update(ctx context.Context, proposal *domain.Proposal) error {
	const query = `
        UPDATE proposals SET title=$1, description=$2, status=$3, stage=$4, value_cents=$5, owner_id=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		proposal.Title,
		proposal.Description,
		proposal.Status,
		proposal.Stage,
		proposal.ValueCents,
		proposal.OwnerID,
		proposal.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *proposalRepository) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id=$1`
	var proposal domain.Proposal
	if err := r.pool.QueryRow(ctx, query, id).Scan(proposalFields(&proposal)...); err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepository) ListWithFilter(ctx context.Context, filter ProposalFilter) ([]domain.Proposal, error) {
	base := `SELECT ` + proposalColumns + ` FROM proposals`
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
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Stages) > 0 {
		placeholders := make([]string, len(filter.Stages))
		for i, stage := range filter.Stages {
			args = append(args, stage)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("stage IN (%s)", strings.Join(placeholders, ",")))
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

	var result []domain.Proposal
	for rows.Next() {
		var proposal domain.Proposal
		if err := rows.Scan(proposalFields(&proposal)...); err != nil {
			return nil, err
		}
		result = append(result, proposal)
	}
	return result, rows.Err()
}

func proposalFields(p *domain.Proposal) []any {
	return []any{
		&p.ID,
		&p.Title,
		&p.Description,
		&p.CustomerID,
		&p.Status,
		&p.Stage,
		&p.ValueCents,
		&p.OwnerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}
