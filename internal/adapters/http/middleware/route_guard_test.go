package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
)

func guardConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{TTLDays: 7},
		Cookie:  config.CookieConfig{Name: "token", SameSite: "Lax"},
	}
}

func guardApp() *fiber.App {
	app := fiber.New()
	app.Use(RouteGuard(guardConfig()))

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get(SignInPath, ok)
	app.Get(AdminLoginPath, ok)
	app.Get(DashboardPath, ok)
	app.Get(DashboardPath+"/banners", ok)
	app.Get("/api/v1/health", ok)

	return app
}

func guardRequest(t *testing.T, app *fiber.App, path string, withCookie bool) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: "token", Value: "tok-abc"})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRouteGuard(t *testing.T) {
	app := guardApp()

	tests := []struct {
		name         string
		path         string
		withCookie   bool
		wantStatus   int
		wantLocation string
	}{
		{"sign-in while credentialed", SignInPath, true, http.StatusFound, DashboardPath},
		{"admin-login while credentialed", AdminLoginPath, true, http.StatusFound, DashboardPath},
		{"sign-in anonymous", SignInPath, false, http.StatusOK, ""},
		{"admin-login anonymous", AdminLoginPath, false, http.StatusOK, ""},
		{"dashboard anonymous", DashboardPath, false, http.StatusFound, SignInPath},
		{"nested dashboard anonymous", DashboardPath + "/banners", false, http.StatusFound, SignInPath},
		{"dashboard credentialed", DashboardPath, true, http.StatusOK, ""},
		{"root anonymous", "/", false, http.StatusFound, SignInPath},
		{"root credentialed", "/", true, http.StatusFound, DashboardPath},
		{"api passthrough anonymous", "/api/v1/health", false, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := guardRequest(t, app, tt.path, tt.withCookie)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
		})
	}
}

func TestRouteGuardPassthroughNeverRedirects(t *testing.T) {
	app := guardApp()

	// No handlers registered: a passthrough miss is a 404, not a redirect
	for _, path := range []string{"/static/css/app.css", "/uploads/banner.png", "/swagger/index.html", "/favicon.ico"} {
		resp := guardRequest(t, app, path, false)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Empty(t, resp.Header.Get("Location"), path)
	}
}

func TestRequireCapability(t *testing.T) {
	capabilityApp := func(role domain.Role) *fiber.App {
		app := fiber.New()
		app.Get("/guarded",
			func(c *fiber.Ctx) error {
				c.Locals("principal", &domain.Principal{ID: 2, Role: role})
				return c.Next()
			},
			RequireCapability(domain.CapManageAdmins),
			func(c *fiber.Ctx) error { return c.SendString("ok") },
		)
		return app
	}

	// A business admin is bounced back to the dashboard
	resp, err := capabilityApp(domain.RoleAdmin).Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, DashboardPath, resp.Header.Get("Location"))

	// A super admin passes through
	resp, err = capabilityApp(domain.RoleSuperAdmin).Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireCapabilityAPI(t *testing.T) {
	app := fiber.New()
	app.Delete("/api/v1/admins/1",
		func(c *fiber.Ctx) error {
			c.Locals("principal", &domain.Principal{ID: 2, Role: domain.RoleAdmin})
			return c.Next()
		},
		RequireCapabilityAPI(domain.CapManageAdmins),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/admins/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCredentialCookie(t *testing.T) {
	cfg := guardConfig()
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		SetCredentialCookie(c, cfg, "tok-abc")
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/clear", func(c *fiber.Ctx) error {
		ClearCredentialCookie(c, cfg)
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	setCookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, setCookie, "token=tok-abc")
	assert.Contains(t, setCookie, "path=/")
	assert.Contains(t, strings.ToLower(setCookie), "httponly")
	assert.Contains(t, setCookie, "max-age=604800") // 7 days

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/clear", nil))
	require.NoError(t, err)
	cleared := resp.Header.Get("Set-Cookie")
	assert.Contains(t, cleared, "token=")
	assert.Contains(t, cleared, "expires=")
}
