package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/service"
)

// AuditsHandler serves the audit query endpoint.
type AuditsHandler struct {
	service *service.AuditService
}

// NewAuditsHandler constructs handler.
func NewAuditsHandler(auditService *service.AuditService) *AuditsHandler {
	return &AuditsHandler{service: auditService}
}

// List GET /audits.
func (h *AuditsHandler) List(c *fiber.Ctx) error {
	filter := repository.AuditFilter{
		EntityType: optionalQuery(c, "entity_type"),
		From:       parseTime(c.Query("from")),
		To:         parseTime(c.Query("to")),
	}
	if action := c.Query("action"); action != "" {
		act := domain.AuditAction(action)
		filter.Action = &act
	}
	filter.Limit, filter.Offset = pagination(c)

	entries, err := h.service.Query(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewAuditEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
