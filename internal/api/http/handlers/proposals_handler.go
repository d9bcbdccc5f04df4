package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/service"
)

// ProposalsHandler manages pre-sales proposal endpoints.
type ProposalsHandler struct {
	service *service.ProposalService
}

// NewProposalsHandler constructs handler.
func NewProposalsHandler(proposalService *service.ProposalService) *ProposalsHandler {
	return &ProposalsHandler{service: proposalService}
}

// Create POST /proposals.
func (h *ProposalsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProposalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	proposal, err := h.service.Create(c.UserContext(), actor(c), service.ProposalCreateInput{
		Title:       req.Title,
		Description: req.Description,
		CustomerID:  req.CustomerID,
		ValueCents:  req.ValueCents,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewProposalResponse(proposal)})
}

// Update PATCH /proposals/:id.
func (h *ProposalsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProposalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	proposal, err := h.service.Update(c.UserContext(), actor(c), c.Params("id"), service.ProposalCreateInput{
		Title:       req.Title,
		Description: req.Description,
		ValueCents:  req.ValueCents,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProposalResponse(proposal)})
}

// UpdateStatus POST /proposals/:id/status.
func (h *ProposalsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateProposalStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	proposal, err := h.service.UpdateStatus(c.UserContext(), actor(c), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProposalResponse(proposal)})
}

// UpdateStage POST /proposals/:id/stage.
func (h *ProposalsHandler) UpdateStage(c *fiber.Ctx) error {
	var req dto.UpdateProposalStageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	proposal, err := h.service.UpdateStage(c.UserContext(), actor(c), c.Params("id"), req.Stage)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProposalResponse(proposal)})
}

// Get GET /proposals/:id.
func (h *ProposalsHandler) Get(c *fiber.Ctx) error {
	proposal, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProposalResponse(proposal)})
}

// List GET /proposals.
func (h *ProposalsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProposalFilter{
		CustomerID: optionalQuery(c, "customer_id"),
	}
	for _, part := range splitQuery(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.ProposalStatus(part))
	}
	for _, part := range splitQuery(c.Query("stage")) {
		filter.Stages = append(filter.Stages, domain.ProposalStage(part))
	}
	filter.Limit, filter.Offset = pagination(c)

	proposals, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		items = append(items, dto.NewProposalResponse(&proposals[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
