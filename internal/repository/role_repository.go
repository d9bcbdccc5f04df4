package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// RoleRepository persists roles, role assignments and coverage.
// Permissions travel as a typed set in the domain; the delimited string
// encoding is applied here, at the storage boundary only.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context, limit, offset int) ([]domain.Role, error)
	AssignUser(ctx context.Context, roleID, userID string) error
	UnassignUser(ctx context.Context, roleID, userID string) error
	UsersForRole(ctx context.Context, roleID string) ([]domain.User, error)
	UsernamesForRole(ctx context.Context, roleID string) ([]string, error)
	Coverage(ctx context.Context, roleID string) (domain.CoverageScope, error)
	SetCoverage(ctx context.Context, roleID string, customerIDs []string) error
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	const query = `
        INSERT INTO roles (name, description, permissions)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		role.Name,
		role.Description,
		domain.FormatPermissionString(role.Permissions),
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	const query = `
        UPDATE roles SET name=$1, description=$2, permissions=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		role.Name,
		role.Description,
		domain.FormatPermissionString(role.Permissions),
		role.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the role; user assignments and coverage rows cascade
// at the schema level so no dangling joins remain.
func (r *roleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	const query = `
        SELECT id, name, description, permissions, created_at, updated_at
        FROM roles WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	const query = `
        SELECT id, name, description, permissions, created_at, updated_at
        FROM roles WHERE LOWER(name)=LOWER($1)`
	return r.fetchSingle(ctx, query, name)
}

func (r *roleRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Role, error) {
	var role domain.Role
	var raw string
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&raw,
		&role.CreatedAt,
		&role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	role.Permissions = domain.ParsePermissionString(raw)
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context, limit, offset int) ([]domain.Role, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, name, description, permissions, created_at, updated_at
        FROM roles ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoles(rows)
}

func (r *roleRepository) AssignUser(ctx context.Context, roleID, userID string) error {
	const query = `
        INSERT INTO user_roles (user_id, role_id, assigned_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, role_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, userID, roleID)
	return err
}

func (r *roleRepository) UnassignUser(ctx context.Context, roleID, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id=$1 AND role_id=$2`, userID, roleID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roleRepository) UsersForRole(ctx context.Context, roleID string) ([]domain.User, error) {
	const query = `
        SELECT u.id, u.username, u.display_name, u.language, u.active, u.created_at, u.updated_at
        FROM users u
        JOIN user_roles ur ON ur.user_id = u.id
        WHERE ur.role_id = $1
        ORDER BY u.username`

	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.DisplayName,
			&user.Language,
			&user.Active,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

// UsernamesForRole is used for targeted permission cache invalidation.
func (r *roleRepository) UsernamesForRole(ctx context.Context, roleID string) ([]string, error) {
	const query = `
        SELECT u.username FROM users u
        JOIN user_roles ur ON ur.user_id = u.id
        WHERE ur.role_id = $1`

	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		result = append(result, username)
	}
	return result, rows.Err()
}

// Coverage decodes the stored coverage rows into the tagged scope. An
// empty row set means the role sees all customers; the inversion lives
// here and nowhere else.
func (r *roleRepository) Coverage(ctx context.Context, roleID string) (domain.CoverageScope, error) {
	const query = `SELECT customer_id FROM role_coverage WHERE role_id=$1`

	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return domain.CoverageScope{}, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return domain.CoverageScope{}, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return domain.CoverageScope{}, err
	}
	return domain.SpecificCustomersScope(ids), nil
}

func (r *roleRepository) SetCoverage(ctx context.Context, roleID string, customerIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM role_coverage WHERE role_id=$1`, roleID); err != nil {
		return err
	}
	for _, customerID := range customerIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO role_coverage (role_id, customer_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			roleID, customerID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func scanRoles(rows pgx.Rows) ([]domain.Role, error) {
	var result []domain.Role
	for rows.Next() {
		var role domain.Role
		var raw string
		if err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Description,
			&raw,
			&role.CreatedAt,
			&role.UpdatedAt,
		); err != nil {
			return nil, err
		}
		role.Permissions = domain.ParsePermissionString(raw)
		result = append(result, role)
	}
	return result, rows.Err()
}
