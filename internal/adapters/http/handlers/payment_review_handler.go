package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
)

// PaymentReviewHandler handles super-admin payment verification
type PaymentReviewHandler struct {
	api *backend.Client
	cfg *config.Config
}

// NewPaymentReviewHandler creates a new payment review handler
func NewPaymentReviewHandler(api *backend.Client, cfg *config.Config) *PaymentReviewHandler {
	return &PaymentReviewHandler{api: api, cfg: cfg}
}

// VerifyPaymentRequest represents the approve/reject form
type VerifyPaymentRequest struct {
	Status      string `form:"status"`
	Notes       string `form:"notes"`
	PeriodStart string `form:"period_start"`
	PeriodEnd   string `form:"period_end"`
}

// Pending renders the pending-payments review list
func (h *PaymentReviewHandler) Pending(c *fiber.Ctx) error {
	payments, err := h.api.ListPendingPayments(c.UserContext())
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return c.Render("payments/pending", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "payments",
			"Error":      backend.Message(err, "Failed to load pending payments. Please try again."),
		}, "layouts/main")
	}

	return c.Render("payments/pending", fiber.Map{
		"Principal":  middleware.Principal(c),
		"ActivePage": "payments",
		"Payments":   payments,
	}, "layouts/main")
}

// Review renders the verification form for one payment
func (h *PaymentReviewHandler) Review(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/dashboard/payments", fiber.StatusFound)
	}

	payment, err := h.api.GetPayment(c.UserContext(), id)
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return c.Render("payments/review", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "payments",
			"Error":      backend.Message(err, "Failed to load payment"),
		}, "layouts/main")
	}

	return c.Render("payments/review", fiber.Map{
		"Principal":  middleware.Principal(c),
		"ActivePage": "payments",
		"Payment":    payment,
	}, "layouts/main")
}

// Verify handles the approve/reject form submission
func (h *PaymentReviewHandler) Verify(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/dashboard/payments", fiber.StatusFound)
	}

	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderReviewError(c, id, "Invalid form submission")
	}

	req.Status = strings.TrimSpace(req.Status)
	if req.Status != domain.PaymentStatusApproved && req.Status != domain.PaymentStatusRejected {
		return h.renderReviewError(c, id, "Status must be approved or rejected")
	}
	if req.Status == domain.PaymentStatusApproved && (req.PeriodStart == "" || req.PeriodEnd == "") {
		return h.renderReviewError(c, id, "Approved payments need a subscription period")
	}

	input := &backend.VerifyPaymentInput{
		Status:      req.Status,
		Notes:       req.Notes,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	}

	if _, err := h.api.VerifyPayment(c.UserContext(), id, input); err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return h.renderReviewError(c, id, backend.Message(err, "Failed to verify payment"))
	}

	return c.Redirect("/dashboard/payments", fiber.StatusSeeOther)
}

func (h *PaymentReviewHandler) renderReviewError(c *fiber.Ctx, id uint, errMsg string) error {
	payment, err := h.api.GetPayment(c.UserContext(), id)
	if err != nil {
		payment = &domain.Payment{ID: id}
	}

	return c.Render("payments/review", fiber.Map{
		"Principal":  middleware.Principal(c),
		"ActivePage": "payments",
		"Payment":    payment,
		"Error":      errMsg,
	}, "layouts/main")
}
