package backend

import (
	"context"
	"fmt"
	"net/http"

	"foodlink-admin/internal/core/domain"
)

// NotificationInput carries notification fields for create and update
type NotificationInput struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Payload string `json:"payload"`
	AdminID uint   `json:"admin_id"`
}

// ListNotifications fetches all notifications visible to the caller
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetNotification fetches one notification by id
func (c *Client) GetNotification(ctx context.Context, id uint) (*domain.Notification, error) {
	var notification domain.Notification
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notifications/%d", id), nil, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// CreateNotification creates a notification
func (c *Client) CreateNotification(ctx context.Context, input *NotificationInput) (*domain.Notification, error) {
	var notification domain.Notification
	if err := c.do(ctx, http.MethodPost, "/notifications", input, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// UpdateNotification updates a notification
func (c *Client) UpdateNotification(ctx context.Context, id uint, input *NotificationInput) (*domain.Notification, error) {
	var notification domain.Notification
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/%d", id), input, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// DeleteNotification deletes a notification
func (c *Client) DeleteNotification(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notifications/%d", id), nil, nil)
}
