package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/authz"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// PermissionsHandler exposes manual cache maintenance. Cached decisions
// otherwise expire only by TTL.
type PermissionsHandler struct {
	engine *authz.Engine
}

// NewPermissionsHandler constructs handler.
func NewPermissionsHandler(engine *authz.Engine) *PermissionsHandler {
	return &PermissionsHandler{engine: engine}
}

type refreshRequest struct {
	Usernames []string `json:"usernames" validate:"required,min=1,dive,min=1"`
}

// Refresh POST /permissions/refresh. Drops cached permission snapshots
// for the named users; the next check re-reads the database.
func (h *PermissionsHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if len(req.Usernames) == 0 {
		return apperrors.NewValidationError("usernames required", nil)
	}
	h.engine.Invalidate(c.UserContext(), req.Usernames...)
	return c.JSON(fiber.Map{"data": fiber.Map{"invalidated": len(req.Usernames)}})
}
