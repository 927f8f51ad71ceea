package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.Config{
		Backend: config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
	})
}

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))

	ctx := WithToken(context.Background(), "tok-123")
	require.NoError(t, client.do(ctx, http.MethodGet, "/ping", nil, nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))

	require.NoError(t, client.do(context.Background(), http.MethodGet, "/ping", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestEnvelopeDecoding(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "OK",
			"data":    map[string]interface{}{"id": 7, "title": "Ramadan offer"},
		})
	}))

	var banner domain.Banner
	require.NoError(t, client.do(context.Background(), http.MethodGet, "/banners/7", nil, &banner))
	assert.Equal(t, uint(7), banner.ID)
	assert.Equal(t, "Ramadan offer", banner.Title)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		sentinel error
	}{
		{"forbidden", http.StatusForbidden, "Not yours", domain.ErrForbidden},
		{"not found", http.StatusNotFound, "No such banner", domain.ErrNotFound},
		{"validation", http.StatusUnprocessableEntity, "Title is required", domain.ErrInvalidInput},
		{"server error", http.StatusInternalServerError, "", domain.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"message": tt.message,
				})
			}))

			err := client.do(context.Background(), http.MethodGet, "/x", nil, nil)
			assert.ErrorIs(t, err, tt.sentinel)
			if tt.message != "" {
				assert.Equal(t, tt.message, Message(err, "fallback"))
			} else {
				assert.Equal(t, "fallback", Message(err, "fallback"))
			}
		})
	}
}

func TestUnauthorizedFiresHook(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Token expired",
		})
	}))

	var rejected string
	client.SetUnauthorizedHook(func(tok string) { rejected = tok })

	ctx := WithToken(context.Background(), "stale-token")
	err := client.do(ctx, http.MethodGet, "/banners", nil, nil)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "stale-token", rejected)
	assert.Equal(t, "Token expired", Message(err, "fallback"))
}

func TestUnauthorizedWithoutTokenSkipsHook(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	called := false
	client.SetUnauthorizedHook(func(string) { called = true })

	err := client.do(context.Background(), http.MethodGet, "/banners", nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, called, "hook must not fire for unauthenticated calls")
}

func TestBackendUnreachable(t *testing.T) {
	client := NewClient(&config.Config{
		Backend: config.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
	})

	err := client.do(context.Background(), http.MethodGet, "/banners", nil, nil)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)

	// Transport failures carry request context internally but must never
	// surface it to users
	assert.Equal(t, "Failed to load banners", Message(err, "Failed to load banners"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil, "fallback"))
	assert.Equal(t, "fallback", Message(domain.ErrNotFound, "fallback"))
	assert.Equal(t, "Banner not found", Message(wrapMessage("Banner not found", domain.ErrNotFound), "fallback"))

	// Internally wrapped errors are not displayable even when they end in a
	// sentinel
	wrapped := fmt.Errorf("GET /banners: %w", domain.ErrBackendUnavailable)
	assert.Equal(t, "fallback", Message(wrapped, "fallback"))
}
