package routes

import (
	"net/url"
	"strings"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/http/handlers"
	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/adapters/persistence/repositories"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
	"foodlink-admin/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application. The session service is
// returned for callers that need to inspect or seed sessions directly.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.SessionService {
	// Outbound backend client
	api := backend.NewClient(cfg)

	// Repositories
	sessionRepo := repositories.NewSessionRepository(db)

	// Services
	sessionService := services.NewSessionService(api, sessionRepo, cfg)
	dashboardService := services.NewDashboardService(api)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(sessionService, cfg)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminHandler := handlers.NewAdminHandler(api, cfg)
	bannerHandler := handlers.NewBannerHandler(api, cfg)
	notificationHandler := handlers.NewNotificationHandler(api, cfg)
	settingsHandler := handlers.NewSettingsHandler(api, cfg)
	paymentReviewHandler := handlers.NewPaymentReviewHandler(api, cfg)

	// Route guard runs before any page code
	app.Use(middleware.RouteGuard(cfg))

	// Static assets
	app.Static("/static", "./web/static")

	// Uploaded images are served from the backend origin; proxy them so
	// banner thumbnails render same-origin.
	app.All("/uploads/*", uploadsProxy(cfg))

	// Swagger documentation for the JSON sub-surface
	app.Get("/swagger/*", swagger.HandlerDefault)

	// ============================================================
	// Sign-in pages (public, stricter rate limit on submissions)
	// ============================================================
	loginLimiter := middleware.LoginRateLimiter()
	app.Get(middleware.SignInPath, authHandler.ShowSignIn)
	app.Post(middleware.SignInPath, loginLimiter, authHandler.SuperAdminLogin)
	app.Get(middleware.AdminLoginPath, authHandler.ShowAdminLogin)
	app.Post(middleware.AdminLoginPath, loginLimiter, authHandler.AdminLogin)
	app.Post("/logout", authHandler.Logout)

	// ============================================================
	// Dashboard pages (session required)
	// ============================================================
	dash := app.Group(middleware.DashboardPath, middleware.RequireSession(sessionService, cfg))
	dash.Get("/", dashboardHandler.Index)

	// Admin accounts (super admin only)
	admins := dash.Group("/admins", middleware.RequireCapability(domain.CapManageAdmins))
	admins.Get("/", adminHandler.List)
	admins.Get("/new", adminHandler.New)
	admins.Post("/", adminHandler.Create)
	admins.Get("/:id", adminHandler.Edit)
	admins.Post("/:id", adminHandler.Update)

	// Banners
	banners := dash.Group("/banners", middleware.RequireCapability(domain.CapManageBanners))
	banners.Get("/", bannerHandler.List)
	banners.Get("/new", bannerHandler.New)
	banners.Post("/", bannerHandler.Create)
	banners.Get("/:id", bannerHandler.Edit)
	banners.Post("/:id", bannerHandler.Update)

	// Notifications
	notifications := dash.Group("/notifications", middleware.RequireCapability(domain.CapManageNotices))
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/new", notificationHandler.New)
	notifications.Post("/", notificationHandler.Create)
	notifications.Get("/:id", notificationHandler.Edit)
	notifications.Post("/:id", notificationHandler.Update)

	// Settings
	settings := dash.Group("/settings")
	settings.Get("/", settingsHandler.Index)
	settings.Get("/profile", settingsHandler.Profile)
	settings.Post("/profile/password", settingsHandler.ChangePassword)
	settings.Get("/subscription", middleware.RequireCapability(domain.CapViewSubscription), settingsHandler.Subscription)
	settings.Get("/payment", middleware.RequireCapability(domain.CapRecordPayment), settingsHandler.Payment)
	settings.Post("/payment", middleware.RequireCapability(domain.CapRecordPayment), settingsHandler.RecordPayment)

	// Payment verification (super admin only)
	payments := dash.Group("/payments", middleware.RequireCapability(domain.CapVerifyPayments))
	payments.Get("/", paymentReviewHandler.Pending)
	payments.Get("/:id", paymentReviewHandler.Review)
	payments.Post("/:id/verify", paymentReviewHandler.Verify)

	// ============================================================
	// JSON sub-surface
	// ============================================================
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)
	apiV1.Get("/health", healthHandler.HealthCheck)

	authed := apiV1.Group("", middleware.RequireSessionAPI(sessionService, cfg))
	authed.Get("/session", sessionHandler.Current)
	authed.Get("/dashboard/stats", dashboardHandler.Stats)
	authed.Delete("/admins/:id", middleware.RequireCapabilityAPI(domain.CapManageAdmins), adminHandler.Delete)
	authed.Delete("/banners/:id", middleware.RequireCapabilityAPI(domain.CapManageBanners), bannerHandler.Delete)
	authed.Delete("/notifications/:id", middleware.RequireCapabilityAPI(domain.CapManageNotices), notificationHandler.Delete)

	return sessionService
}

// uploadsProxy forwards /uploads/* to the backend origin. The backend base
// URL points at its API prefix; uploads live one level up at the origin root.
func uploadsProxy(cfg *config.Config) fiber.Handler {
	origin := cfg.Backend.BaseURL
	if u, err := url.Parse(cfg.Backend.BaseURL); err == nil {
		origin = u.Scheme + "://" + u.Host
	}
	origin = strings.TrimRight(origin, "/")

	return func(c *fiber.Ctx) error {
		return proxy.Do(c, origin+c.OriginalURL())
	}
}
