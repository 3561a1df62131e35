package routes

import (
	"lifelink-registry/internal/adapters/http/handlers"
	"lifelink-registry/internal/adapters/http/middleware"
	"lifelink-registry/internal/adapters/persistence/repositories"
	"lifelink-registry/internal/config"
	"lifelink-registry/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	registrantRepo := repositories.NewRegistrantRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	requestRepo := repositories.NewOrganRequestRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	fulfillmentStore := repositories.NewFulfillmentStore(db)

	// Initialize services
	authService := services.NewAuthService(registrantRepo, refreshTokenRepo, cfg)
	requestService := services.NewRequestService(requestRepo)
	fulfillmentService := services.NewFulfillmentService(fulfillmentStore, donationRepo)
	dashboardService := services.NewDashboardService(db, registrantRepo, requestRepo, donationRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	requestHandler := handlers.NewRequestHandler(requestService)
	donationHandler := handlers.NewDonationHandler(fulfillmentService)
	adminHandler := handlers.NewAdminHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, tighter rate limit)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Request routes (authenticated)
	requestRoutes := apiV1.Group("/requests")
	requestRoutes.Use(middleware.AuthMiddleware(cfg))
	setupRequestRoutes(requestRoutes, requestHandler)

	// Donation routes (authenticated)
	donationRoutes := apiV1.Group("/donations")
	donationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDonationRoutes(donationRoutes, donationHandler)

	// Admin routes (ADMIN role)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, adminHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupRequestRoutes configures organ request routes
func setupRequestRoutes(router fiber.Router, handler *handlers.RequestHandler) {
	router.Post("/", handler.Create)
	router.Get("/matching", handler.ListMatching)
	router.Get("/my", handler.ListMine)
}

// setupDonationRoutes configures donation routes
func setupDonationRoutes(router fiber.Router, handler *handlers.DonationHandler) {
	router.Get("/requests/:request_id", handler.GetRequest)
	router.Post("/fulfill/:request_id", handler.Fulfill)
	router.Get("/history", handler.History)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Get("/dashboard", handler.Dashboard)
	router.Get("/registrants", handler.ListRegistrants)
	router.Get("/requests", handler.ListRequests)
	router.Get("/donors", handler.ListDonors)
	router.Get("/records", handler.ListDonationRecords)
	router.Delete("/registrants/:id", handler.DeleteRegistrant)
}
