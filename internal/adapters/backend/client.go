// Package backend is the outbound client for the food-business platform API.
// It is the only path requests leave the portal on: every call injects the
// session's bearer token, decodes the backend's response envelope, and maps
// failure statuses onto the domain error set.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
)

// ctxKey is the context key type for the request-scoped bearer token
type ctxKey int

const tokenKey ctxKey = 0

// WithToken returns a context carrying the bearer token for outbound calls.
// The session middleware sets this from the durable session copy.
func WithToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, tokenKey, tok)
}

// TokenFromContext returns the bearer token carried by the context, if any.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

// UnauthorizedHook is called with the rejected token whenever the backend
// answers 401. The session service registers its Invalidate here so the
// durable and in-memory session copies are cleared in one synchronous path.
type UnauthorizedHook func(tok string)

// Client wraps outbound requests to the platform backend
type Client struct {
	baseURL        string
	http           *http.Client
	onUnauthorized UnauthorizedHook
}

// NewClient creates a backend client from config
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Backend.BaseURL,
		http:    &http.Client{Timeout: cfg.Backend.Timeout},
	}
}

// SetUnauthorizedHook registers the 401 handler. Must be called before the
// client is shared; the hook is not guarded by a lock.
func (c *Client) SetUnauthorizedHook(hook UnauthorizedHook) {
	c.onUnauthorized = hook
}

// BaseURL returns the configured backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the backend's standard response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do sends a JSON request and decodes the envelope's data field into out.
// A nil body sends no payload; a nil out discards the data field.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send executes a prepared request: bearer injection, status mapping,
// envelope decoding. Shared by do and the multipart upload path.
func (c *Client) send(req *http.Request, out interface{}) error {
	if tok := TokenFromContext(req.Context()); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, domain.ErrBackendUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", domain.ErrBackendUnavailable)
	}

	var env envelope
	// Tolerate non-JSON error bodies; the status mapping below still applies.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		if tok := TokenFromContext(req.Context()); tok != "" && c.onUnauthorized != nil {
			c.onUnauthorized(tok)
		}
		return wrapMessage(env.Message, domain.ErrUnauthorized)
	}

	if resp.StatusCode >= 400 {
		return wrapMessage(env.Message, statusError(resp.StatusCode))
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// statusError maps a backend failure status to a domain sentinel
func statusError(status int) error {
	switch {
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status >= 400 && status < 500:
		return domain.ErrInvalidInput
	default:
		return domain.ErrInternalServer
	}
}

// apiError carries the backend's human-readable message alongside the mapped
// sentinel. Only errors of this type are displayable; transport and decode
// failures stay internal and surface as the caller's fallback text.
type apiError struct {
	message  string
	sentinel error
}

func (e *apiError) Error() string {
	return e.message + ": " + e.sentinel.Error()
}

func (e *apiError) Unwrap() error {
	return e.sentinel
}

// wrapMessage keeps the backend's human-readable message on the error chain
// so the views can surface it verbatim.
func wrapMessage(message string, sentinel error) error {
	if message == "" {
		return sentinel
	}
	return &apiError{message: message, sentinel: sentinel}
}

// Message extracts the displayable part of a backend error: the message the
// backend sent, or fallback when the error carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.message
	}
	return fallback
}
