package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/pkg/pagination"
)

// SettingsHandler handles the settings area: profile, subscription, payments
type SettingsHandler struct {
	api *backend.Client
	cfg *config.Config
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(api *backend.Client, cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{api: api, cfg: cfg}
}

// ChangePasswordRequest represents the super-admin password form
type ChangePasswordRequest struct {
	OldPassword     string `form:"old_password"`
	NewPassword     string `form:"new_password"`
	ConfirmPassword string `form:"confirm_password"`
}

// PaymentFormRequest represents the record-payment form
type PaymentFormRequest struct {
	Amount        string `form:"amount"`
	PaymentMethod string `form:"payment_method"`
	TransactionID string `form:"transaction_id"`
	Notes         string `form:"notes"`
}

// Index redirects the bare settings path to the profile page
func (h *SettingsHandler) Index(c *fiber.Ctx) error {
	return c.Redirect("/dashboard/settings/profile", fiber.StatusFound)
}

// Profile renders the role-appropriate profile page
func (h *SettingsHandler) Profile(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	data := fiber.Map{
		"Principal":  principal,
		"ActivePage": "settings",
	}

	if principal.IsSuperAdmin() {
		profile, err := h.api.SuperAdminProfile(c.UserContext())
		if err != nil {
			if authFailed(c, h.cfg, err) {
				return c.Redirect(middleware.SignInPath, fiber.StatusFound)
			}
			data["Error"] = backend.Message(err, "Failed to load profile")
		} else {
			data["Profile"] = profile
		}
	} else {
		admin, err := h.api.AdminProfile(c.UserContext())
		if err != nil {
			if authFailed(c, h.cfg, err) {
				return c.Redirect(middleware.SignInPath, fiber.StatusFound)
			}
			data["Error"] = backend.Message(err, "Failed to load profile")
		} else {
			data["Admin"] = admin
		}
	}

	return c.Render("settings/profile", data, "layouts/main")
}

// ChangePassword handles the super-admin password form submission
func (h *SettingsHandler) ChangePassword(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderProfileError(c, "Invalid form submission")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return h.renderProfileError(c, "Current and new passwords are required")
	}
	if len(req.NewPassword) < 8 {
		return h.renderProfileError(c, "New password must be at least 8 characters")
	}
	if req.NewPassword != req.ConfirmPassword {
		return h.renderProfileError(c, "Passwords do not match")
	}

	if err := h.api.ChangePassword(c.UserContext(), req.OldPassword, req.NewPassword); err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return h.renderProfileError(c, backend.Message(err, "Failed to change password"))
	}

	return c.Render("settings/profile", fiber.Map{
		"Principal":  principal,
		"ActivePage": "settings",
		"Success":    "Password changed successfully",
	}, "layouts/main")
}

// Subscription renders the subscription status page with the tier grid
func (h *SettingsHandler) Subscription(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	data := fiber.Map{
		"Principal":  principal,
		"ActivePage": "settings",
	}

	info, err := h.api.SubscriptionInfo(c.UserContext())
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		data["Error"] = backend.Message(err, "Failed to load subscription information. Please try again.")
		return c.Render("settings/subscription", data, "layouts/main")
	}
	data["Subscription"] = info

	tiers, err := h.api.ListSubscriptionTiers(c.UserContext())
	if err != nil {
		data["Error"] = backend.Message(err, "Failed to load subscription tiers")
	} else {
		data["Tiers"] = tiers
	}

	return c.Render("settings/subscription", data, "layouts/main")
}

// Payment renders the record-payment page with history
func (h *SettingsHandler) Payment(c *fiber.Ctx) error {
	return h.renderPayment(c, nil, "", "")
}

// RecordPayment handles the payment form submission
func (h *SettingsHandler) RecordPayment(c *fiber.Ctx) error {
	var req PaymentFormRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderPayment(c, nil, "Invalid form submission", "")
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil || amount <= 0 {
		return h.renderPayment(c, &req, "A valid payment amount is required", "")
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "bank_transfer"
	}

	input := &backend.PaymentInput{
		Amount:        amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: strings.TrimSpace(req.TransactionID),
		Notes:         req.Notes,
	}

	if _, err := h.api.RecordPayment(c.UserContext(), input); err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return h.renderPayment(c, &req, backend.Message(err, "Failed to record payment"), "")
	}

	return h.renderPayment(c, nil, "", "Payment recorded successfully. It will be verified shortly.")
}

// renderPayment assembles the payment page: subscription info (for the
// default amount), the submitted form on failure, and paginated history.
func (h *SettingsHandler) renderPayment(c *fiber.Ctx, form *PaymentFormRequest, errMsg, success string) error {
	principal := middleware.Principal(c)

	data := fiber.Map{
		"Principal":  principal,
		"ActivePage": "settings",
		"Error":      errMsg,
		"Success":    success,
		"Form":       form,
	}

	info, err := h.api.SubscriptionInfo(c.UserContext())
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		if errMsg == "" {
			data["Error"] = backend.Message(err, "Failed to load payment information. Please try again.")
		}
		return c.Render("settings/payment", data, "layouts/main")
	}
	data["Subscription"] = info

	payments, err := h.api.ListPayments(c.UserContext())
	if err != nil {
		if errMsg == "" {
			data["Error"] = backend.Message(err, "Failed to load payment history")
		}
		return c.Render("settings/payment", data, "layouts/main")
	}

	params := pagination.GetParams(c)
	start, end := pagination.Bounds(params, len(payments))
	data["Payments"] = payments[start:end]
	data["Meta"] = pagination.GetMeta(params, int64(len(payments)))

	return c.Render("settings/payment", data, "layouts/main")
}

func (h *SettingsHandler) renderProfileError(c *fiber.Ctx, errMsg string) error {
	return c.Render("settings/profile", fiber.Map{
		"Principal":  middleware.Principal(c),
		"ActivePage": "settings",
		"Error":      errMsg,
	}, "layouts/main")
}
