package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
	"foodlink-admin/internal/pkg/response"
)

// AdminHandler handles admin-account management pages (super admin only)
type AdminHandler struct {
	api *backend.Client
	cfg *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(api *backend.Client, cfg *config.Config) *AdminHandler {
	return &AdminHandler{api: api, cfg: cfg}
}

// AdminFormRequest represents the admin create/edit form
type AdminFormRequest struct {
	UserName        string `form:"user_name"`
	Email           string `form:"email"`
	CompanyName     string `form:"company_name"`
	SystemID        string `form:"system_id"`
	SystemToken     string `form:"system_token"`
	SMSToken        string `form:"sms_token"`
	SMSEmail        string `form:"sms_email"`
	SMSPassword     string `form:"sms_password"`
	SMSMessage      string `form:"sms_message"`
	PaymentUsername string `form:"payment_username"`
	PaymentPassword string `form:"payment_password"`
}

// List renders the admin-account list
func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.api.ListAdmins(c.UserContext())
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return c.Render("admins/index", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "admins",
			"Error":      backend.Message(err, "Failed to load admins. Please try again."),
		}, "layouts/main")
	}

	return c.Render("admins/index", fiber.Map{
		"Principal":  middleware.Principal(c),
		"ActivePage": "admins",
		"Admins":     admins,
	}, "layouts/main")
}

// New renders an empty admin form
func (h *AdminHandler) New(c *fiber.Ctx) error {
	return c.Render("admins/form", fiber.Map{
		"Principal":  middleware.Principal(c),
		"ActivePage": "admins",
	}, "layouts/main")
}

// Edit renders the admin form seeded from an existing record. Password-like
// fields are never seeded from the server.
func (h *AdminHandler) Edit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/dashboard/admins", fiber.StatusFound)
	}

	admin, err := h.api.GetAdmin(c.UserContext(), id)
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return c.Render("admins/form", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "admins",
			"Error":      backend.Message(err, "Failed to load admin"),
		}, "layouts/main")
	}

	admin.PaymentPassword = ""
	admin.SMSPassword = ""

	return c.Render("admins/form", fiber.Map{
		"Principal":  middleware.Principal(c),
		"ActivePage": "admins",
		"Admin":      admin,
	}, "layouts/main")
}

// Create handles the admin create form submission
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	req, errMsg := h.parseForm(c)
	if errMsg != "" {
		return c.Render("admins/form", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "admins",
			"Error":      errMsg,
			"Admin":      formAdmin(req),
		}, "layouts/main")
	}

	input := formInput(req)
	// Create always sends the payment password, even when blank
	input.PaymentPassword = &req.PaymentPassword

	if _, err := h.api.CreateAdmin(c.UserContext(), input); err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return c.Render("admins/form", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "admins",
			"Error":      backend.Message(err, "Failed to save admin"),
			"Admin":      formAdmin(req),
		}, "layouts/main")
	}

	return c.Redirect("/dashboard/admins", fiber.StatusSeeOther)
}

// Update handles the admin edit form submission. An empty payment password
// means "keep the stored one" and is omitted from the update.
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/dashboard/admins", fiber.StatusFound)
	}

	req, errMsg := h.parseForm(c)
	if errMsg != "" {
		return c.Render("admins/form", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "admins",
			"Error":      errMsg,
			"Admin":      formAdmin(req),
		}, "layouts/main")
	}

	input := formInput(req)
	if req.PaymentPassword != "" {
		input.PaymentPassword = &req.PaymentPassword
	}

	if _, err := h.api.UpdateAdmin(c.UserContext(), id, input); err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		admin := formAdmin(req)
		admin.ID = id
		return c.Render("admins/form", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "admins",
			"Error":      backend.Message(err, "Failed to save admin"),
			"Admin":      admin,
		}, "layouts/main")
	}

	return c.Redirect("/dashboard/admins", fiber.StatusSeeOther)
}

// Delete removes an admin account
// @Summary Delete admin account
// @Description Deletes a business admin account (super admin only)
// @Tags Admins
// @Produce json
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admins/{id} [delete]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid admin id")
	}

	if err := h.api.DeleteAdmin(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return response.Unauthorized(c, "Session expired")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Admin not found")
		default:
			return response.BadGateway(c, backend.Message(err, "Failed to delete admin"))
		}
	}

	return response.Success(c, "Admin deleted", nil)
}

// parseForm parses and validates the admin form
func (h *AdminHandler) parseForm(c *fiber.Ctx) (*AdminFormRequest, string) {
	var req AdminFormRequest
	if err := c.BodyParser(&req); err != nil {
		return &req, "Invalid form submission"
	}

	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.TrimSpace(req.Email)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.SystemID = strings.TrimSpace(req.SystemID)

	if req.UserName == "" {
		return &req, "Username is required"
	}
	if req.Email == "" {
		return &req, "Email is required"
	}
	if req.SystemID == "" {
		return &req, "System ID is required"
	}

	return &req, ""
}

// formInput converts the form into the backend payload
func formInput(req *AdminFormRequest) *backend.AdminInput {
	return &backend.AdminInput{
		UserName:        req.UserName,
		Email:           req.Email,
		CompanyName:     req.CompanyName,
		SystemID:        req.SystemID,
		SystemToken:     req.SystemToken,
		SMSToken:        req.SMSToken,
		SMSEmail:        req.SMSEmail,
		SMSPassword:     req.SMSPassword,
		SMSMessage:      req.SMSMessage,
		PaymentUsername: req.PaymentUsername,
	}
}

// formAdmin echoes submitted values back into the form after a failure
func formAdmin(req *AdminFormRequest) *domain.Admin {
	return &domain.Admin{
		UserName:        req.UserName,
		Email:           req.Email,
		CompanyName:     req.CompanyName,
		SystemID:        req.SystemID,
		SystemToken:     req.SystemToken,
		SMSToken:        req.SMSToken,
		SMSEmail:        req.SMSEmail,
		SMSMessage:      req.SMSMessage,
		PaymentUsername: req.PaymentUsername,
	}
}
