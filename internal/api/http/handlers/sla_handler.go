package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/service"
)

// SLAHandler manages threshold configuration endpoints.
type SLAHandler struct {
	service *service.SLAService
}

// NewSLAHandler constructs handler.
func NewSLAHandler(slaService *service.SLAService) *SLAHandler {
	return &SLAHandler{service: slaService}
}

// Create POST /sla-thresholds.
func (h *SLAHandler) Create(c *fiber.Ctx) error {
	var req dto.SLAThresholdRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	threshold, err := h.service.Create(c.UserContext(), actor(c), service.SLAInput{
		Priority:        req.Priority,
		ResponseHours:   req.ResponseHours,
		ResolutionHours: req.ResolutionHours,
		Active:          req.Active,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewSLAThresholdResponse(threshold)})
}

// Update PUT /sla-thresholds/:id.
func (h *SLAHandler) Update(c *fiber.Ctx) error {
	var req dto.SLAThresholdRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	threshold, err := h.service.Update(c.UserContext(), actor(c), c.Params("id"), service.SLAInput{
		Priority:        req.Priority,
		ResponseHours:   req.ResponseHours,
		ResolutionHours: req.ResolutionHours,
		Active:          req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSLAThresholdResponse(threshold)})
}

// Get GET /sla-thresholds/:id.
func (h *SLAHandler) Get(c *fiber.Ctx) error {
	threshold, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSLAThresholdResponse(threshold)})
}

// List GET /sla-thresholds.
func (h *SLAHandler) List(c *fiber.Ctx) error {
	thresholds, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SLAThresholdResponse, 0, len(thresholds))
	for i := range thresholds {
		items = append(items, dto.NewSLAThresholdResponse(&thresholds[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
