package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
	"foodlink-admin/internal/pkg/response"
)

// BannerHandler handles promotional banner pages
type BannerHandler struct {
	api *backend.Client
	cfg *config.Config
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(api *backend.Client, cfg *config.Config) *BannerHandler {
	return &BannerHandler{api: api, cfg: cfg}
}

// BannerFormRequest represents the banner create/edit form. Image carries the
// already-uploaded filename; a newly chosen file arrives as multipart and
// replaces it.
type BannerFormRequest struct {
	Title   string `form:"title"`
	Body    string `form:"body"`
	Image   string `form:"image"`
	AdminID string `form:"admin_id"`
}

// List renders the banner list
func (h *BannerHandler) List(c *fiber.Ctx) error {
	banners, err := h.api.ListBanners(c.UserContext())
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return c.Render("banners/index", fiber.Map{
			"Principal":  middleware.Principal(c),
			"ActivePage": "banners",
			"Error":      backend.Message(err, "Failed to load banners. Please try again."),
		}, "layouts/main")
	}

	return c.Render("banners/index", fiber.Map{
		"Principal":  middleware.Principal(c),
		"ActivePage": "banners",
		"Banners":    banners,
	}, "layouts/main")
}

// New renders an empty banner form
func (h *BannerHandler) New(c *fiber.Ctx) error {
	return h.renderForm(c, nil, "")
}

// Edit renders the banner form seeded from the fetched record: title, body
// and the existing image filename, which is resubmitted unchanged unless a
// new file is chosen.
func (h *BannerHandler) Edit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/dashboard/banners", fiber.StatusFound)
	}

	banner, err := h.api.GetBanner(c.UserContext(), id)
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		return h.renderForm(c, nil, backend.Message(err, "Failed to load banner"))
	}

	return h.renderForm(c, banner, "")
}

// Create handles the banner create form submission
func (h *BannerHandler) Create(c *fiber.Ctx) error {
	return h.save(c, 0)
}

// Update handles the banner edit form submission
func (h *BannerHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/dashboard/banners", fiber.StatusFound)
	}
	return h.save(c, id)
}

// save is the shared create-or-update path: upload a newly chosen image
// first, then post the banner with whichever filename applies.
func (h *BannerHandler) save(c *fiber.Ctx, id uint) error {
	var req BannerFormRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderForm(c, nil, "Invalid form submission")
	}

	req.Title = strings.TrimSpace(req.Title)
	banner := &domain.Banner{ID: id, Title: req.Title, Body: req.Body, Image: req.Image}

	if req.Title == "" {
		return h.renderForm(c, banner, "Title is required")
	}

	image := req.Image
	if file, err := c.FormFile("image_file"); err == nil && file != nil && file.Size > 0 {
		src, err := file.Open()
		if err != nil {
			return h.renderForm(c, banner, "Failed to read uploaded image")
		}
		defer src.Close()

		uploaded, err := h.api.UploadImage(c.UserContext(), file.Filename, src)
		if err != nil {
			if authFailed(c, h.cfg, err) {
				return c.Redirect(middleware.SignInPath, fiber.StatusFound)
			}
			return h.renderForm(c, banner, backend.Message(err, "Failed to upload image"))
		}
		image = uploaded.Filename
	}

	input := &backend.BannerInput{
		Title:   req.Title,
		Body:    req.Body,
		Image:   image,
		AdminID: h.ownerID(c, req.AdminID),
	}

	var err error
	if id > 0 {
		_, err = h.api.UpdateBanner(c.UserContext(), id, input)
	} else {
		_, err = h.api.CreateBanner(c.UserContext(), input)
	}
	if err != nil {
		if authFailed(c, h.cfg, err) {
			return c.Redirect(middleware.SignInPath, fiber.StatusFound)
		}
		banner.Image = image
		return h.renderForm(c, banner, backend.Message(err, "Failed to save banner"))
	}

	return c.Redirect("/dashboard/banners", fiber.StatusSeeOther)
}

// Delete removes a banner
// @Summary Delete banner
// @Description Deletes a promotional banner
// @Tags Banners
// @Produce json
// @Param id path int true "Banner ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /banners/{id} [delete]
func (h *BannerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid banner id")
	}

	if err := h.api.DeleteBanner(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return response.Unauthorized(c, "Session expired")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Banner not found")
		default:
			return response.BadGateway(c, backend.Message(err, "Failed to delete banner"))
		}
	}

	return response.Success(c, "Banner deleted", nil)
}

// ownerID resolves the banner's admin: super admins pick from the selector,
// business admins always own their records.
func (h *BannerHandler) ownerID(c *fiber.Ctx, formValue string) uint {
	principal := middleware.Principal(c)
	if principal.IsSuperAdmin() {
		if id, err := strconv.ParseUint(formValue, 10, 32); err == nil && id > 0 {
			return uint(id)
		}
	}
	return principal.ID
}

// renderForm renders the banner form, including the admin selector for super
// admins. A selector that fails to load degrades to a form without it.
func (h *BannerHandler) renderForm(c *fiber.Ctx, banner *domain.Banner, errMsg string) error {
	principal := middleware.Principal(c)

	var admins []domain.Admin
	if principal.IsSuperAdmin() {
		if list, err := h.api.ListAdmins(c.UserContext()); err == nil {
			admins = list
		}
	}

	return c.Render("banners/form", fiber.Map{
		"Principal":  principal,
		"ActivePage": "banners",
		"Banner":     banner,
		"Admins":     admins,
		"Error":      errMsg,
	}, "layouts/main")
}
