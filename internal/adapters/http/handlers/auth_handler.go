package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
	"foodlink-admin/internal/core/services"
)

// AuthHandler handles the sign-in screens and session lifecycle
type AuthHandler struct {
	sessions *services.SessionService
	cfg      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		cfg:      cfg,
	}
}

// SuperAdminLoginRequest represents the super-admin login form
type SuperAdminLoginRequest struct {
	Login    string `form:"login" json:"login"`
	Password string `form:"password" json:"password"`
}

// AdminLoginRequest represents the business-admin login form
type AdminLoginRequest struct {
	UserName string `form:"user_name" json:"user_name"`
	SystemID string `form:"system_id" json:"system_id"`
	Email    string `form:"email" json:"email"`
}

// ShowSignIn renders the super-admin sign-in page. Login failures are
// surfaced inline by the POST handlers; a fresh page render never carries
// another request's error.
func (h *AuthHandler) ShowSignIn(c *fiber.Ctx) error {
	return c.Render("auth/sign-in", fiber.Map{}, "layouts/auth")
}

// ShowAdminLogin renders the business-admin login page
func (h *AuthHandler) ShowAdminLogin(c *fiber.Ctx) error {
	return c.Render("auth/admin-login", fiber.Map{}, "layouts/auth")
}

// SuperAdminLogin handles the super-admin login form submission
func (h *AuthHandler) SuperAdminLogin(c *fiber.Ctx) error {
	var req SuperAdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Render("auth/sign-in", fiber.Map{
			"Error": "Invalid form submission",
		}, "layouts/auth")
	}

	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		return c.Render("auth/sign-in", fiber.Map{
			"Error": "Login and password are required",
			"Login": req.Login,
		}, "layouts/auth")
	}

	sess, err := h.sessions.LoginSuperAdmin(c.Context(), req.Login, req.Password)
	if err != nil {
		return c.Render("auth/sign-in", fiber.Map{
			"Error": h.loginError(err),
			"Login": req.Login,
		}, "layouts/auth")
	}

	middleware.SetCredentialCookie(c, h.cfg, sess.Token)
	return c.Redirect(middleware.DashboardPath, fiber.StatusSeeOther)
}

// AdminLogin handles the business-admin login form submission
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Render("auth/admin-login", fiber.Map{
			"Error": "Invalid form submission",
		}, "layouts/auth")
	}

	req.UserName = strings.TrimSpace(req.UserName)
	req.SystemID = strings.TrimSpace(req.SystemID)
	req.Email = strings.TrimSpace(req.Email)
	if req.UserName == "" || req.SystemID == "" || req.Email == "" {
		return c.Render("auth/admin-login", fiber.Map{
			"Error":    "Username, system ID and email are required",
			"UserName": req.UserName,
			"SystemID": req.SystemID,
			"Email":    req.Email,
		}, "layouts/auth")
	}

	sess, err := h.sessions.LoginAdmin(c.Context(), req.UserName, req.SystemID, req.Email)
	if err != nil {
		return c.Render("auth/admin-login", fiber.Map{
			"Error":    h.loginError(err),
			"UserName": req.UserName,
			"SystemID": req.SystemID,
			"Email":    req.Email,
		}, "layouts/auth")
	}

	middleware.SetCredentialCookie(c, h.cfg, sess.Token)
	return c.Redirect(middleware.DashboardPath, fiber.StatusSeeOther)
}

// Logout clears the session and credential cookie. Safe to call from any
// screen; no backend round trip is involved.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	tok := c.Cookies(h.cfg.Cookie.Name)
	if err := h.sessions.Logout(c.Context(), tok); err != nil {
		// The cookie is cleared regardless; a stale durable row is swept later
		middleware.ClearCredentialCookie(c, h.cfg)
		return c.Redirect(middleware.SignInPath, fiber.StatusSeeOther)
	}

	middleware.ClearCredentialCookie(c, h.cfg)
	return c.Redirect(middleware.SignInPath, fiber.StatusSeeOther)
}

// loginError maps a login failure to the message shown inline on the form.
// The message comes off the error value itself, never shared state.
func (h *AuthHandler) loginError(err error) string {
	switch {
	case errors.Is(err, domain.ErrLoginInFlight):
		return "A login is already in progress"
	case errors.Is(err, domain.ErrInvalidInput):
		return "All fields are required"
	default:
		return backend.Message(err, "Failed to login")
	}
}
