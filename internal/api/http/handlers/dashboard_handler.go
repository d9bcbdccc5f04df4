package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/service"
)

// DashboardHandler serves metric snapshot endpoints.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Get GET /dashboard. Optional role_id or customer_id query params
// scope the aggregation; persist=true stores the computed snapshot.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	roleID := optionalQuery(c, "role_id")
	customerID := optionalQuery(c, "customer_id")
	persist := c.Query("persist") == "true"

	metric, err := h.service.ComputeSnapshot(c.UserContext(), roleID, customerID, persist)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDashboardResponse(metric)})
}
