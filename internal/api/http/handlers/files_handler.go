package handlers

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/service"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// FilesHandler manages entity attachment endpoints.
type FilesHandler struct {
	service *service.FileService
}

// NewFilesHandler constructs handler.
func NewFilesHandler(fileService *service.FileService) *FilesHandler {
	return &FilesHandler{service: fileService}
}

// Upload POST /files. Multipart form with fields entity_type, entity_id
// and one "file" part.
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file part required", nil)
	}
	src, err := header.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable file part", nil)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	file, err := h.service.Upload(c.UserContext(), actor(c), service.FileUploadInput{
		EntityType:  c.FormValue("entity_type"),
		EntityID:    c.FormValue("entity_id"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewFileResponse(file)})
}

// Download GET /files/:id/content. Streams the original content; the
// at-rest gzip layer is transparent to the caller.
func (h *FilesHandler) Download(c *fiber.Ctx) error {
	file, reader, err := h.service.Open(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.FileName+`"`)
	c.Set(fiber.HeaderContentLength, strconv.FormatInt(file.SizeBytes, 10))
	return c.SendStream(reader)
}

// Thumbnail GET /files/:id/thumbnail.
func (h *FilesHandler) Thumbnail(c *fiber.Ctx) error {
	_, reader, err := h.service.OpenThumbnail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.SendStream(reader)
}

// Get GET /files/:id.
func (h *FilesHandler) Get(c *fiber.Ctx) error {
	files, err := h.service.ListByEntity(c.UserContext(), c.Query("entity_type"), c.Query("entity_id"))
	if err != nil {
		return err
	}
	items := make([]dto.FileResponse, 0, len(files))
	for i := range files {
		items = append(items, dto.NewFileResponse(&files[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Delete DELETE /files/:id.
func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
