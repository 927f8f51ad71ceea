package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"foodlink-admin/internal/adapters/http/middleware"
	"foodlink-admin/internal/adapters/http/routes"
	"foodlink-admin/internal/adapters/persistence/models"
	"foodlink-admin/internal/adapters/persistence/repositories"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	_ "foodlink-admin/docs" // Swagger docs
)

// @title FoodLink Admin Portal API
// @version 1.0
// @description JSON sub-surface of the FoodLink admin portal (health, session introspection, dashboard stats, resource deletes).

// @contact.name Portal Support
// @contact.email support@foodlink.app

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to the session-store database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate the portal's own tables
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Start the session sweep
	cleanup := services.NewCleanupService(repositories.NewSessionRepository(db))
	cleanup.Start()
	defer cleanup.Stop()

	// HTML view engine
	engine := html.New("./web/templates", ".html")
	engine.AddFunc("add", func(a, b int) int { return a + b })

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FoodLink Admin Portal v1.0",
		Views:        engine,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Portal starting on port %s [MODE: %s] -> backend %s", cfg.Port, cfg.AppMode, cfg.Backend.BaseURL)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
