package handlers

import (
	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/core/services"
	"foodlink-admin/internal/pkg/response"
)

// DashboardHandler renders the dashboard landing page and serves its stats
type DashboardHandler struct {
	dashboard *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Index renders the dashboard landing page
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	stats, recent, err := h.dashboard.Stats(c.UserContext(), principal)
	if err != nil {
		return c.Render("dashboard/index", fiber.Map{
			"Principal":  principal,
			"ActivePage": "dashboard",
			"Error":      backend.Message(err, "Failed to load dashboard data. Please try again later."),
		}, "layouts/main")
	}

	return c.Render("dashboard/index", fiber.Map{
		"Principal":           principal,
		"ActivePage":          "dashboard",
		"Stats":               stats,
		"RecentNotifications": recent,
	}, "layouts/main")
}

// Stats returns dashboard statistics as JSON
// @Summary Dashboard statistics
// @Description Banner/notification counts plus subscription status for business admins
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	stats, _, err := h.dashboard.Stats(c.UserContext(), principal)
	if err != nil {
		return response.BadGateway(c, backend.Message(err, "Failed to load dashboard data"))
	}

	return response.Success(c, "", stats)
}
