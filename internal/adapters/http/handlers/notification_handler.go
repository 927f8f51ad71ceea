package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
	"foodlink-admin/internal/pkg/pagination"
	"foodlink-admin/internal/pkg/response"
)

// NotificationHandler handles push-notification pages
type NotificationHandler struct {
	api *backend.Client
	cfg *config.Config
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(api *backend.Client, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{api: api, cfg: cfg}
}

// NotificationFormRequest represents the notification create/edit form
type NotificationFormRequest struct {
	Title   string `form:"title"`
	Body    string `form:"body"`
	Payload string `form:"payload"`
	AdminID string `form:"admin_id"`
}

// List renders the notification list, paginated portal-side
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.api.ListNotifications(c.UserContext())
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return c.Render("notifications/index", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "notifications",
			"Error":      backend.Message(err, "Failed to load notifications. Please try again."),
		}, "layouts/main")
	}

	params := pagination.GetParams(c)
	start, end := pagination.Bounds(params, len(notifications))

	return c.Render("notifications/index", fiber.Map{
		"Principal":     middleware.Principal(c),
		"ActivePage":    "notifications",
		"Notifications": notifications[start:end],
		"Meta":          pagination.GetMeta(params, int64(len(notifications))),
	}, "layouts/main")
}

// New renders an empty notification form
func (h *NotificationHandler) New(c *fiber.Ctx) error {
	return h.renderForm(c, nil, "")
}

// Edit renders the notification form seeded from an existing record
func (h *NotificationHandler) Edit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/dashboard/notifications", fiber.StatusFound)
	}

	notification, err := h.api.GetNotification(c.UserContext(), id)
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return h.renderForm(c, nil, backend.Message(err, "Failed to load notification"))
	}

	return h.renderForm(c, notification, "")
}

// Create handles the notification create form submission
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	return h.save(c, 0)
}

// Update handles the notification edit form submission
func (h *NotificationHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/dashboard/notifications", fiber.StatusFound)
	}
	return h.save(c, id)
}

func (h *NotificationHandler) save(c *fiber.Ctx, id uint) error {
	var req NotificationFormRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderForm(c, nil, "Invalid form submission")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Payload = strings.TrimSpace(req.Payload)
	notification := &domain.Notification{ID: id, Title: req.Title, Body: req.Body, Payload: req.Payload}

	if req.Title == "" {
		return h.renderForm(c, notification, "Title is required")
	}
	if req.Payload != "" && !json.Valid([]byte(req.Payload)) {
		return h.renderForm(c, notification, "Payload must be valid JSON")
	}

	input := &backend.NotificationInput{
		Title:   req.Title,
		Body:    req.Body,
		Payload: req.Payload,
		AdminID: h.ownerID(c, req.AdminID),
	}

	var err error
	if id > 0 {
		_, err = h.api.UpdateNotification(c.UserContext(), id, input)
	} else {
		_, err = h.api.CreateNotification(c.UserContext(), input)
	}
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return h.renderForm(c, notification, backend.Message(err, "Failed to save notification"))
	}

	return c.Redirect("/dashboard/notifications", fiber.StatusSeeOther)
}

// Delete removes a notification
// @Summary Delete notification
// @Description Deletes a push notification record
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid notification id")
	}

	if err := h.api.DeleteNotification(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return response.Unauthorized(c, "Session expired")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Notification not found")
		default:
			return response.BadGateway(c, backend.Message(err, "Failed to delete notification"))
		}
	}

	return response.Success(c, "Notification deleted", nil)
}

func (h *NotificationHandler) ownerID(c *fiber.Ctx, formValue string) uint {
	principal := middleware.Principal(c)
	if principal.IsSuperAdmin() {
		if id, err := strconv.ParseUint(formValue, 10, 32); err == nil && id > 0 {
			return uint(id)
		}
	}
	return principal.ID
}

func (h *NotificationHandler) renderForm(c *fiber.Ctx, notification *domain.Notification, errMsg string) error {
	principal := middleware.Principal(c)

	var admins []domain.Admin
	if principal.IsSuperAdmin() {
		if list, err := h.api.ListAdmins(c.UserContext()); err == nil {
			admins = list
		}
	}

	return c.Render("notifications/form", fiber.Map{
		"Principal":    principal,
		"ActivePage":   "notifications",
		"Notification": notification,
		"Admins":       admins,
		"Error":        errMsg,
	}, "layouts/main")
}
