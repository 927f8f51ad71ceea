package handlers

import (
	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/core/services"
	"foodlink-admin/internal/pkg/response"
)

// SessionHandler serves session introspection on the JSON sub-surface
type SessionHandler struct {
	sessions *services.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Current returns the authenticated principal
// @Summary Current session
// @Description Returns the principal of the caller's session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /session [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	if sess == nil {
		return response.Unauthorized(c, "No valid session")
	}

	return response.Success(c, "", fiber.Map{
		"session_id": sess.ID,
		"expires_at": sess.ExpiresAt,
		"principal":  sess.Principal,
	})
}
