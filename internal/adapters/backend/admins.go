package backend

import (
	"context"
	"fmt"
	"net/http"

	"foodlink-admin/internal/core/domain"
)

// AdminInput carries admin-account fields for create and update. Pointer
// fields are omitted when nil so an empty payment password never overwrites a
// stored one.
type AdminInput struct {
	UserName        string  `json:"user_name"`
	Email           string  `json:"email"`
	CompanyName     string  `json:"company_name"`
	SystemID        string  `json:"system_id"`
	SystemToken     string  `json:"system_token"`
	SMSToken        string  `json:"sms_token"`
	SMSEmail        string  `json:"sms_email"`
	SMSPassword     string  `json:"sms_password"`
	SMSMessage      string  `json:"sms_message"`
	PaymentUsername string  `json:"payment_username"`
	PaymentPassword *string `json:"payment_password,omitempty"`
}

// ListAdmins fetches all admin accounts
func (c *Client) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	var admins []domain.Admin
	if err := c.do(ctx, http.MethodGet, "/admins", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// GetAdmin fetches one admin account by id
func (c *Client) GetAdmin(ctx context.Context, id uint) (*domain.Admin, error) {
	var admin domain.Admin
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admins/%d", id), nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// CreateAdmin creates an admin account
func (c *Client) CreateAdmin(ctx context.Context, input *AdminInput) (*domain.Admin, error) {
	var admin domain.Admin
	if err := c.do(ctx, http.MethodPost, "/admins", input, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdateAdmin updates an admin account
func (c *Client) UpdateAdmin(ctx context.Context, id uint, input *AdminInput) (*domain.Admin, error) {
	var admin domain.Admin
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admins/%d", id), input, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// DeleteAdmin deletes an admin account
func (c *Client) DeleteAdmin(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admins/%d", id), nil, nil)
}
