package backend

import (
	"context"
	"net/http"

	"foodlink-admin/internal/core/domain"
)

// LoginResult is the payload both login endpoints return
type LoginResult struct {
	Token string            `json:"token"`
	User  *domain.Principal `json:"user"`
}

// SuperAdminLoginRequest is the super-admin credential pair
type SuperAdminLoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AdminLoginRequest identifies a business admin. Credential-free by design:
// identity is the combination of the three fields, not a secret.
type AdminLoginRequest struct {
	UserName string `json:"user_name"`
	SystemID string `json:"system_id"`
	Email    string `json:"email"`
}

// ChangePasswordRequest updates the super-admin password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// SuperAdminLogin authenticates against the super-admin login endpoint
func (c *Client) SuperAdminLogin(ctx context.Context, login, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/superadmin/login", SuperAdminLoginRequest{
		Login:    login,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AdminLogin authenticates against the business-admin login endpoint
func (c *Client) AdminLogin(ctx context.Context, userName, systemID, email string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/admin/login", AdminLoginRequest{
		UserName: userName,
		SystemID: systemID,
		Email:    email,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ChangePassword changes the super-admin password
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/superadmin/change-password", ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, nil)
}

// AdminProfile fetches the business-admin self profile
func (c *Client) AdminProfile(ctx context.Context) (*domain.Admin, error) {
	var admin domain.Admin
	if err := c.do(ctx, http.MethodGet, "/admin/profile", nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// SuperAdminProfile fetches the super-admin self profile
func (c *Client) SuperAdminProfile(ctx context.Context) (*domain.Principal, error) {
	var profile domain.Principal
	if err := c.do(ctx, http.MethodGet, "/superadmin/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
