package backend

import (
	"context"
	"fmt"
	"net/http"

	"foodlink-admin/internal/core/domain"
)

// BannerInput carries banner fields for create and update
type BannerInput struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Image   string `json:"image"`
	AdminID uint   `json:"admin_id"`
}

// ListBanners fetches all banners visible to the caller
func (c *Client) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	var banners []domain.Banner
	if err := c.do(ctx, http.MethodGet, "/banners", nil, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// GetBanner fetches one banner by id
func (c *Client) GetBanner(ctx context.Context, id uint) (*domain.Banner, error) {
	var banner domain.Banner
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/banners/%d", id), nil, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

// CreateBanner creates a banner
func (c *Client) CreateBanner(ctx context.Context, input *BannerInput) (*domain.Banner, error) {
	var banner domain.Banner
	if err := c.do(ctx, http.MethodPost, "/banners", input, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

// UpdateBanner updates a banner
func (c *Client) UpdateBanner(ctx context.Context, id uint, input *BannerInput) (*domain.Banner, error) {
	var banner domain.Banner
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/banners/%d", id), input, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

// DeleteBanner deletes a banner
func (c *Client) DeleteBanner(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/banners/%d", id), nil, nil)
}
