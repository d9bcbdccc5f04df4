package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/filestore"
	"github.com/spec-kit/crm-service/internal/service"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

type fakeFileRepo struct {
	files map[string]*domain.EntityFile
	seq   int
}

func (f *fakeFileRepo) Create(_ context.Context, file *domain.EntityFile) error {
	f.seq++
	file.ID = fmt.Sprintf("file-%d", f.seq)
	stored := *file
	f.files[file.ID] = &stored
	return nil
}

func (f *fakeFileRepo) GetByID(_ context.Context, id string) (*domain.EntityFile, error) {
	file, ok := f.files[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *file
	return &copied, nil
}

func (f *fakeFileRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]domain.EntityFile, error) {
	var out []domain.EntityFile
	for _, file := range f.files {
		if file.EntityType == entityType && file.EntityID == entityID {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (f *fakeFileRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.files[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.files, id)
	return nil
}

func newFilesApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := filestore.New(config.FilesConfig{Dir: t.TempDir(), ThumbnailMaxPx: 32}, zap.NewNop())
	require.NoError(t, err)

	fileService := service.NewFileService(service.FileDependencies{
		FileRepo:     &fakeFileRepo{files: map[string]*domain.EntityFile{}},
		Store:        store,
		AllowedTypes: []string{"text/plain"},
	})
	handler := NewFilesHandler(fileService)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		},
	})
	app.Post("/files", handler.Upload)
	app.Get("/files/:id/content", handler.Download)
	return app
}

func multipartUpload(t *testing.T, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("entity_type", "Case"))
	require.NoError(t, writer.WriteField("entity_id", "case-1"))
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="note.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestFilesUploadRoundTrip(t *testing.T) {
	app := newFilesApp(t)
	payload := []byte("attachment body")
	body, contentType := multipartUpload(t, payload)

	req := httptest.NewRequest(http.MethodPost, "/files", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/files/file-1/content", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, "text/plain", resp.Header.Get(fiber.HeaderContentType))
}

func TestFilesUploadMissingPart(t *testing.T) {
	app := newFilesApp(t)

	req := httptest.NewRequest(http.MethodPost, "/files", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
