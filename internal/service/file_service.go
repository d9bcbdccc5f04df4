package service

import (
	"context"
	"io"
	"strings"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/filestore"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// FileService manages entity attachments: allow-list and size checks,
// disk storage with at-rest compression, thumbnails for images.
type FileService struct {
	files      repository.FileRepository
	store      *filestore.Store
	allowed    map[string]struct{}
	maxBytes   int64
	dispatcher events.Dispatcher
}

// FileDependencies bundles collaborators for the file service.
type FileDependencies struct {
	FileRepo       repository.FileRepository
	Store          *filestore.Store
	AllowedTypes   []string
	MaxUploadBytes int64
	Dispatcher     events.Dispatcher
}

// FileUploadInput describes an upload.
type FileUploadInput struct {
	EntityType  string
	EntityID    string
	FileName    string
	ContentType string
	Data        []byte
}

// NewFileService constructs the service.
func NewFileService(deps FileDependencies) *FileService {
	allowed := make(map[string]struct{}, len(deps.AllowedTypes))
	for _, contentType := range deps.AllowedTypes {
		allowed[strings.ToLower(contentType)] = struct{}{}
	}
	maxBytes := deps.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 100 << 20
	}
	return &FileService{
		files:      deps.FileRepo,
		store:      deps.Store,
		allowed:    allowed,
		maxBytes:   maxBytes,
		dispatcher: deps.Dispatcher,
	}
}

// Upload validates and stores an attachment.
func (s *FileService) Upload(ctx context.Context, actor string, input FileUploadInput) (*domain.EntityFile, error) {
	if input.EntityType == "" || input.EntityID == "" {
		return nil, apperrors.NewValidationError("entity_type and entity_id required", nil)
	}
	if strings.TrimSpace(input.FileName) == "" {
		return nil, apperrors.NewValidationError("file name required", nil)
	}
	contentType := normalizeContentType(input.ContentType)
	if _, ok := s.allowed[contentType]; !ok {
		return nil, apperrors.NewValidationError("content type not allowed", map[string]any{"content_type": contentType})
	}
	if int64(len(input.Data)) > s.maxBytes {
		return nil, apperrors.NewValidationError("file too large", map[string]any{
			"size_bytes": len(input.Data),
			"max_bytes":  s.maxBytes,
		})
	}

	saved, err := s.store.Save(input.Data, contentType)
	if err != nil {
		return nil, err
	}

	file := &domain.EntityFile{
		EntityType:   input.EntityType,
		EntityID:     input.EntityID,
		FileName:     input.FileName,
		ContentType:  contentType,
		SizeBytes:    int64(len(input.Data)),
		StorageKey:   saved.StorageKey,
		Compressed:   saved.Compressed,
		ThumbnailKey: saved.ThumbnailKey,
		UploadedBy:   actor,
	}
	if err := s.files.Create(ctx, file); err != nil {
		thumb := ""
		if saved.ThumbnailKey != nil {
			thumb = *saved.ThumbnailKey
		}
		s.store.Remove(saved.StorageKey, thumb)
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityCreated, "EntityFile", file.ID, actor, map[string]any{
		"file_name":   file.FileName,
		"entity_type": file.EntityType,
		"entity_id":   file.EntityID,
		"size_bytes":  file.SizeBytes,
	})
	return file, nil
}

// Open returns metadata plus a reader over the original (decompressed)
// content.
func (s *FileService) Open(ctx context.Context, id string) (*domain.EntityFile, io.ReadCloser, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.store.Open(file.StorageKey, file.Compressed)
	if err != nil {
		return nil, nil, err
	}
	return file, reader, nil
}

// OpenThumbnail returns a reader over the generated thumbnail.
func (s *FileService) OpenThumbnail(ctx context.Context, id string) (*domain.EntityFile, io.ReadCloser, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if file.ThumbnailKey == nil {
		return nil, nil, apperrors.NewNotFound("thumbnail", map[string]any{"file_id": id})
	}
	reader, err := s.store.Open(*file.ThumbnailKey, false)
	if err != nil {
		return nil, nil, err
	}
	return file, reader, nil
}

// ListByEntity returns attachments for one entity.
func (s *FileService) ListByEntity(ctx context.Context, entityType, entityID string) ([]domain.EntityFile, error) {
	return s.files.ListByEntity(ctx, entityType, entityID)
}

// Delete removes metadata and stored binaries.
func (s *FileService) Delete(ctx context.Context, actor, id string) error {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.files.Delete(ctx, file.ID); err != nil {
		return err
	}
	thumb := ""
	if file.ThumbnailKey != nil {
		thumb = *file.ThumbnailKey
	}
	s.store.Remove(file.StorageKey, thumb)
	publishMutation(ctx, s.dispatcher, events.EventEntityDeleted, "EntityFile", file.ID, actor, map[string]any{
		"file_name": file.FileName,
	})
	return nil
}

func normalizeContentType(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return contentType
}
