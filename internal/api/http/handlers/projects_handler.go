package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/service"
)

// ProjectsHandler manages delivery project endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// Create POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	project, err := h.service.Create(c.UserContext(), actor(c), service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		CustomerID:  req.CustomerID,
		ManagerID:   req.ManagerID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Update PATCH /projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	project, err := h.service.Update(c.UserContext(), actor(c), c.Params("id"), service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// UpdateStatus POST /projects/:id/status.
func (h *ProjectsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateProjectStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	project, err := h.service.UpdateStatus(c.UserContext(), actor(c), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Get GET /projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// List GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProjectFilter{
		CustomerID: optionalQuery(c, "customer_id"),
	}
	for _, part := range splitQuery(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.ProjectStatus(part))
	}
	filter.Limit, filter.Offset = pagination(c)

	projects, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, dto.NewProjectResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
