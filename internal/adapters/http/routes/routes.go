package routes

import (
	"staffhub/internal/adapters/http/handlers"
	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	adminRepo := repositories.NewAdminRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)

	// Initialize services
	authService := services.NewAuthService(adminRepo, employeeRepo, cfg)
	employeeService := services.NewEmployeeService(employeeRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Admin routes
	admin := app.Group("/api/admin")
	admin.Get("/check-auth", middleware.SessionGuard(cfg), authHandler.CheckAuth)
	admin.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	admin.Post("/register", middleware.AuthRateLimiter(), middleware.RegistrationGuard(adminRepo, cfg), authHandler.Register)
	admin.Post("/check-password", middleware.StrictRateLimiter(), authHandler.CheckPassword)
	admin.Get("/check-access", authHandler.CheckAccess)
	admin.Get("/check-admin", authHandler.CheckAdmin)
	admin.Post("/logout", authHandler.Logout)

	// Employee routes (session required)
	employees := app.Group("/api/employees", middleware.SessionGuard(cfg))
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// 404 fallback for unknown routes
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})
}
