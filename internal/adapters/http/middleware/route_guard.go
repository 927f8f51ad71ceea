package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
	"foodlink-admin/internal/core/services"
	"foodlink-admin/internal/pkg/response"
)

// Paths of the two sign-in screens
const (
	SignInPath     = "/sign-in"
	AdminLoginPath = "/admin-login"
	DashboardPath  = "/dashboard"
)

// passthroughPrefixes are never redirected, regardless of credential state:
// static assets, the uploads proxy, the JSON sub-surface and swagger.
var passthroughPrefixes = []string{
	"/static",
	"/uploads",
	"/api",
	"/swagger",
	"/favicon.ico",
}

// RouteGuard is the coarse, request-time access check at the edge. It reads
// only the presence of the credential cookie — it cannot and does not
// distinguish role; role gating happens per handler via RequireCapability.
//
// Rules, evaluated in order per navigation:
//  1. sign-in path with a credential cookie        -> /dashboard
//  2. dashboard area (or root) without credential  -> /sign-in
//  3. exact root (credentialed, after rule 2)      -> /dashboard
//  4. passthrough prefixes untouched
//  5. everything else passes through
func RouteGuard(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, prefix := range passthroughPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		hasCredential := c.Cookies(cfg.Cookie.Name) != ""
		isSignInPath := path == SignInPath || path == AdminLoginPath

		if isSignInPath && hasCredential {
			return c.Redirect(DashboardPath, fiber.StatusFound)
		}

		inDashboard := path == "/" || path == DashboardPath ||
			strings.HasPrefix(path, DashboardPath+"/")
		if inDashboard && !hasCredential {
			return c.Redirect(SignInPath, fiber.StatusFound)
		}

		if path == "/" {
			return c.Redirect(DashboardPath, fiber.StatusFound)
		}

		return c.Next()
	}
}

// RequireSession resolves the credential cookie into a session and stashes it
// for the handlers. The bearer token is placed on the request's user context
// so every backend call made while handling this request carries it. A stale
// or rejected credential clears the cookie and lands on sign-in.
func RequireSession(sessions *services.SessionService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := c.Cookies(cfg.Cookie.Name)

		sess, err := sessions.Resolve(c.Context(), tok)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrSessionExpired) {
				ClearCredentialCookie(c, cfg)
				return c.Redirect(SignInPath, fiber.StatusFound)
			}
			return err
		}

		c.Locals("session", sess)
		c.Locals("principal", sess.Principal)
		c.SetUserContext(backend.WithToken(c.UserContext(), sess.Token))

		return c.Next()
	}
}

// RequireSessionAPI is the JSON variant of RequireSession: a missing or
// stale credential answers 401 instead of redirecting.
func RequireSessionAPI(sessions *services.SessionService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := c.Cookies(cfg.Cookie.Name)
		if tok == "" {
			// Tooling may send the token as a bearer header instead
			authHeader := c.Get("Authorization")
			tok = strings.TrimPrefix(authHeader, "Bearer ")
		}

		sess, err := sessions.Resolve(c.Context(), tok)
		if err != nil {
			return response.Unauthorized(c, "No valid session")
		}

		c.Locals("session", sess)
		c.Locals("principal", sess.Principal)
		c.SetUserContext(backend.WithToken(c.UserContext(), sess.Token))

		return c.Next()
	}
}

// RequireCapability gates a page on the single capability check. A principal
// without the capability is sent back to the dashboard, matching the
// render-time redirect the views perform.
func RequireCapability(cap domain.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := Principal(c)
		if !domain.Can(principal, cap) {
			return c.Redirect(DashboardPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireCapabilityAPI is the JSON variant of RequireCapability
func RequireCapabilityAPI(cap domain.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := Principal(c)
		if !domain.Can(principal, cap) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// Principal returns the resolved principal for the request, or nil
func Principal(c *fiber.Ctx) *domain.Principal {
	principal, _ := c.Locals("principal").(*domain.Principal)
	return principal
}

// Session returns the resolved session for the request, or nil
func Session(c *fiber.Ctx) *domain.Session {
	sess, _ := c.Locals("session").(*domain.Session)
	return sess
}

// SetCredentialCookie writes the short-lived credential: the raw bearer
// token, path-scoped to the whole application, with the configured expiry
// (7 days by default).
func SetCredentialCookie(c *fiber.Ctx, cfg *config.Config, tok string) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Cookie.Name,
		Value:    tok,
		Path:     "/",
		MaxAge:   cfg.Session.TTLDays * 24 * 60 * 60,
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}

// ClearCredentialCookie expires the credential cookie
func ClearCredentialCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}
