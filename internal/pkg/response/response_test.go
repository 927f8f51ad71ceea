package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeFor(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorEnvelope(t *testing.T) {
	// Failure text travels in the "error" field; the delete script on the
	// list pages reads it from there
	status, body := envelopeFor(t, func(c *fiber.Ctx) error {
		return NotFound(c, "Banner not found")
	})

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Banner not found", body["error"])
	assert.NotContains(t, body, "message")
}

func TestSuccessEnvelope(t *testing.T) {
	status, body := envelopeFor(t, func(c *fiber.Ctx) error {
		return Success(c, "Banner deleted", nil)
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Banner deleted", body["message"])
	assert.NotContains(t, body, "error")
}
