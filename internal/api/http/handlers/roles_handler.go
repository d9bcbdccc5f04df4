package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/service"
)

// RolesHandler manages role, assignment and coverage endpoints.
type RolesHandler struct {
	service *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{service: roleService}
}

// Create POST /roles.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	role, err := h.service.Create(c.UserContext(), actor(c), service.RoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.PermissionSet(),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewRoleResponse(role)})
}

// Update PUT /roles/:id.
func (h *RolesHandler) Update(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	role, err := h.service.Update(c.UserContext(), actor(c), c.Params("id"), service.RoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.PermissionSet(),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoleResponse(role)})
}

// Delete DELETE /roles/:id.
func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get GET /roles/:id.
func (h *RolesHandler) Get(c *fiber.Ctx) error {
	role, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoleResponse(role)})
}

// List GET /roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	roles, err := h.service.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		items = append(items, dto.NewRoleResponse(&roles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AssignUser POST /roles/:id/members.
func (h *RolesHandler) AssignUser(c *fiber.Ctx) error {
	var req dto.AssignUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.service.AssignUser(c.UserContext(), actor(c), c.Params("id"), req.UserID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnassignUser DELETE /roles/:id/members/:userId.
func (h *RolesHandler) UnassignUser(c *fiber.Ctx) error {
	if err := h.service.UnassignUser(c.UserContext(), actor(c), c.Params("id"), c.Params("userId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Members GET /roles/:id/members.
func (h *RolesHandler) Members(c *fiber.Ctx) error {
	users, err := h.service.Members(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Coverage GET /roles/:id/coverage.
func (h *RolesHandler) Coverage(c *fiber.Ctx) error {
	scope, err := h.service.Coverage(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCoverageResponse(scope)})
}

// SetCoverage PUT /roles/:id/coverage.
func (h *RolesHandler) SetCoverage(c *fiber.Ctx) error {
	var req dto.CoverageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	scope, err := h.service.SetCoverage(c.UserContext(), actor(c), c.Params("id"), req.CustomerIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCoverageResponse(scope)})
}
