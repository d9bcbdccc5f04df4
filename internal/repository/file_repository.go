package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// FileRepository persists attachment metadata; binary content lives in
// the filestore.
type FileRepository interface {
	Create(ctx context.Context, file *domain.EntityFile) error
	GetByID(ctx context.Context, id string) (*domain.EntityFile, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]domain.EntityFile, error)
	Delete(ctx context.Context, id string) error
}

type fileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository returns a Postgres-backed implementation.
func NewFileRepository(pool *pgxpool.Pool) FileRepository {
	return &fileRepository{pool: pool}
}

const fileColumns = `id, entity_type, entity_id, file_name, content_type, size_bytes,
        storage_key, compressed, thumbnail_key, uploaded_by, created_at`

func (r *fileRepository) Create(ctx context.Context, file *domain.EntityFile) error {
	const query = `
        INSERT INTO entity_files (entity_type, entity_id, file_name, content_type, size_bytes,
            storage_key, compressed, thumbnail_key, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		file.EntityType,
		file.EntityID,
		file.FileName,
		file.ContentType,
		file.SizeBytes,
		file.StorageKey,
		file.Compressed,
		file.ThumbnailKey,
		file.UploadedBy,
	).Scan(&file.ID, &file.CreatedAt)
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*domain.EntityFile, error) {
	query := `SELECT ` + fileColumns + ` FROM entity_files WHERE id=$1`
	var file domain.EntityFile
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.EntityType,
		&file.EntityID,
		&file.FileName,
		&file.ContentType,
		&file.SizeBytes,
		&file.StorageKey,
		&file.Compressed,
		&file.ThumbnailKey,
		&file.UploadedBy,
		&file.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]domain.EntityFile, error) {
	query := `SELECT ` + fileColumns + ` FROM entity_files WHERE entity_type=$1 AND entity_id=$2 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EntityFile
	for rows.Next() {
		var file domain.EntityFile
		if err := rows.Scan(
			&file.ID,
			&file.EntityType,
			&file.EntityID,
			&file.FileName,
			&file.ContentType,
			&file.SizeBytes,
			&file.StorageKey,
			&file.Compressed,
			&file.ThumbnailKey,
			&file.UploadedBy,
			&file.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, file)
	}
	return result, rows.Err()
}

func (r *fileRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM entity_files WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
