package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
)

// parseID reads a numeric :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidInput
	}
	return uint(id), nil
}

// authFailed redirects to sign-in when the backend rejected the session's
// credential mid-request. The session service has already cleared both
// session copies through the 401 hook; only the cookie remains to clear.
func authFailed(c *fiber.Ctx, cfg *config.Config, err error) bool {
	if errors.Is(err, domain.ErrUnauthorized) {
		middleware.ClearCredentialCookie(c, cfg)
		return true
	}
	return false
}
