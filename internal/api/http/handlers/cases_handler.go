package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/service"
)

// CasesHandler manages support case endpoints.
type CasesHandler struct {
	service *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(caseService *service.CaseService) *CasesHandler {
	return &CasesHandler{service: caseService}
}

// Create POST /cases.
func (h *CasesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCaseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	created, err := h.service.Create(c.UserContext(), actor(c), service.CaseCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		CustomerID:  req.CustomerID,
		SystemID:    req.SystemID,
		ComponentID: req.ComponentID,
		SiteID:      req.SiteID,
		OrderID:     req.OrderID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCaseResponse(created, h.service.SLAStatus(created))})
}

// Update PATCH /cases/:id.
func (h *CasesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCaseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.service.Update(c.UserContext(), actor(c), c.Params("id"), service.CaseUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		SystemID:    req.SystemID,
		ComponentID: req.ComponentID,
		SiteID:      req.SiteID,
		OrderID:     req.OrderID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCaseResponse(updated, h.service.SLAStatus(updated))})
}

// UpdateStatus POST /cases/:id/status.
func (h *CasesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateCaseStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.service.UpdateStatus(c.UserContext(), actor(c), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCaseResponse(updated, h.service.SLAStatus(updated))})
}

// UpdatePriority POST /cases/:id/priority.
func (h *CasesHandler) UpdatePriority(c *fiber.Ctx) error {
	var req dto.UpdateCasePriorityRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.service.UpdatePriority(c.UserContext(), actor(c), c.Params("id"), req.Priority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCaseResponse(updated, h.service.SLAStatus(updated))})
}

// MarkFirstResponse POST /cases/:id/first-response.
func (h *CasesHandler) MarkFirstResponse(c *fiber.Ctx) error {
	updated, err := h.service.MarkFirstResponse(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCaseResponse(updated, h.service.SLAStatus(updated))})
}

// Get GET /cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	found, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCaseResponse(found, h.service.SLAStatus(found))})
}

// List GET /cases.
func (h *CasesHandler) List(c *fiber.Ctx) error {
	filter := parseCaseQuery(c)
	cases, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.CaseResponse, 0, len(cases))
	for i := range cases {
		items = append(items, dto.NewCaseResponse(&cases[i], h.service.SLAStatus(&cases[i])))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseCaseQuery(c *fiber.Ctx) repository.CaseFilter {
	filter := repository.CaseFilter{
		CustomerID: optionalQuery(c, "customer_id"),
		AssigneeID: optionalQuery(c, "assignee_id"),
		SearchTerm: optionalQuery(c, "search"),
	}
	for _, part := range splitQuery(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.CaseStatus(part))
	}
	for _, part := range splitQuery(c.Query("priority")) {
		filter.Priorities = append(filter.Priorities, domain.CasePriority(part))
	}
	filter.CreatedFrom = parseTime(c.Query("created_from"))
	filter.CreatedTo = parseTime(c.Query("created_to"))
	filter.Limit, filter.Offset = pagination(c)
	return filter
}
