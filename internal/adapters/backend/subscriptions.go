package backend

import (
	"context"
	"fmt"
	"net/http"

	"foodlink-admin/internal/core/domain"
)

// PaymentInput records a subscription payment
type PaymentInput struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id"`
	Notes         string  `json:"notes"`
}

// VerifyPaymentInput approves or rejects a pending payment
type VerifyPaymentInput struct {
	Status      string `json:"status"` // approved | rejected
	Notes       string `json:"notes"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

// ListSubscriptionTiers fetches the public plan tiers
func (c *Client) ListSubscriptionTiers(ctx context.Context) ([]domain.SubscriptionTier, error) {
	var tiers []domain.SubscriptionTier
	if err := c.do(ctx, http.MethodGet, "/public/subscription-tiers", nil, &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

// SubscriptionInfo fetches the caller's current subscription status
func (c *Client) SubscriptionInfo(ctx context.Context) (*domain.SubscriptionInfo, error) {
	var info domain.SubscriptionInfo
	if err := c.do(ctx, http.MethodGet, "/payments/subscription", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RecordPayment records a payment for the caller's subscription
func (c *Client) RecordPayment(ctx context.Context, input *PaymentInput) (*domain.Payment, error) {
	var payment domain.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", input, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments fetches the caller's payment history
func (c *Client) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	if err := c.do(ctx, http.MethodGet, "/payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListPendingPayments fetches payments awaiting verification (super admin)
func (c *Client) ListPendingPayments(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	if err := c.do(ctx, http.MethodGet, "/superadmin/payments/pending", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// GetPayment fetches one payment by id (super admin)
func (c *Client) GetPayment(ctx context.Context, id uint) (*domain.Payment, error) {
	var payment domain.Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/superadmin/payments/%d", id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// VerifyPayment approves or rejects a payment (super admin)
func (c *Client) VerifyPayment(ctx context.Context, id uint, input *VerifyPaymentInput) (*domain.Payment, error) {
	var payment domain.Payment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/superadmin/payments/%d/verify", id), input, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
