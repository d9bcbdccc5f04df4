package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// FileResponse represents attachment metadata. SizeBytes is always the
// original size, regardless of at-rest compression.
type FileResponse struct {
	ID           string    `json:"id"`
	EntityType   string    `json:"entity_type"`
	EntityID     string    `json:"entity_id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	HasThumbnail bool      `json:"has_thumbnail"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewFileResponse maps domain file metadata. Storage keys stay internal.
func NewFileResponse(file *domain.EntityFile) FileResponse {
	return FileResponse{
		ID:           file.ID,
		EntityType:   file.EntityType,
		EntityID:     file.EntityID,
		FileName:     file.FileName,
		ContentType:  file.ContentType,
		SizeBytes:    file.SizeBytes,
		HasThumbnail: file.ThumbnailKey != nil,
		UploadedBy:   file.UploadedBy,
		CreatedAt:    file.CreatedAt,
	}
}
