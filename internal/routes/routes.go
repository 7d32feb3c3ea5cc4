// Package routes defines the API routing configuration. It wires
// repositories, services and handlers and groups routes by audience:
// public checkout, authenticated merchant/admin, and super-admin only.
package routes

import (
	"strings"

	"linkpay/internal/config"
	"linkpay/internal/handlers"
	"linkpay/internal/middleware"
	"linkpay/internal/repositories"
	"linkpay/internal/services/auth"
	"linkpay/internal/services/catalog"
	"linkpay/internal/services/checkout"
	"linkpay/internal/services/email"
	"linkpay/internal/services/event"
	"linkpay/internal/services/method"
	"linkpay/internal/services/notification"
	"linkpay/internal/services/payment"
	"linkpay/internal/services/storage"
	"linkpay/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	catalogRepo := repositories.NewCatalogRepository(db)
	methodRepo := repositories.NewPaymentMethodRepository(db)
	linkRepo := repositories.NewCheckoutLinkRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	catalogService := catalog.NewService(catalogRepo)
	methodService := method.NewService(methodRepo, repositories.CacheService)

	resolver := checkout.NewResolver(
		methodRepo,
		repositories.CacheService,
		config.GetDurationEnv("RESOLUTION_CACHE_TTL", checkout.DefaultResolutionTTL),
	)
	linkService := checkout.NewService(linkRepo, catalogRepo, resolver, repositories.CacheService)

	mailer := email.NewDevMailer(telemetry.Logger)
	notifier := notification.NewService(notificationRepo, userRepo, mailer, telemetry.Logger)

	var publisher event.Publisher = event.NoopPublisher{}
	if brokers := config.GetEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher = event.NewKafkaPublisher(
			strings.Split(brokers, ","),
			config.GetEnv("KAFKA_TOPIC", "payment.state_changed"),
		)
	}

	paymentService := payment.NewService(
		paymentRepo,
		resolver,
		notifier,
		publisher,
		payment.NewPrometheusCollector(),
		telemetry.Logger,
	)

	proofStore, err := storage.NewLocalStore(
		config.GetEnv("UPLOAD_DIR", "./uploads"),
		"/uploads",
	)
	if err != nil {
		panic("failed to set up proof storage: " + err.Error())
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	methodHandler := handlers.NewMethodHandler(methodService)
	linkHandler := handlers.NewCheckoutLinkHandler(linkService)
	publicHandler := handlers.NewPublicCheckoutHandler(linkService, resolver, paymentService, proofStore)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notifier)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Get("/health", handlers.HealthCheck)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)

	// Public checkout flow, keyed by slug and opaque payment id
	api.Get("/checkout/:slug", publicHandler.GetLink)
	api.Get("/checkout/:slug/methods", publicHandler.ResolveMethods)
	api.Post("/checkout/:slug/payments", publicHandler.CreatePayment)
	api.Get("/pay/:id", publicHandler.GetPayment)
	api.Post("/pay/:id/proof", publicHandler.SubmitProof)

	// Protected routes
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)

	methods := protected.Group("/methods")
	methods.Get("/", methodHandler.List)
	methods.Post("/", methodHandler.Create)
	methods.Get("/:id", methodHandler.Get)
	methods.Put("/:id", methodHandler.Update)

	links := protected.Group("/links")
	links.Get("/", linkHandler.List)
	links.Post("/", linkHandler.Create)
	links.Get("/:id", linkHandler.Get)
	links.Put("/:id", linkHandler.Update)
	links.Delete("/:id", linkHandler.Delete)

	payments := protected.Group("/payments")
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.Get)
	payments.Patch("/:id/status", paymentHandler.UpdateStatus)

	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread", notificationHandler.UnreadCount)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	cat := protected.Group("/catalog")
	cat.Get("/countries", catalogHandler.ListCountries)
	cat.Post("/countries", catalogHandler.CreateCountry)
	cat.Patch("/countries/:id/status", catalogHandler.UpdateCountryStatus)
	cat.Get("/currencies", catalogHandler.ListCurrencies)
	cat.Post("/currencies", catalogHandler.CreateCurrency)

	// Super-admin maintenance
	admin := protected.Group("/admin", middleware.SuperAdminOnly)
	admin.Post("/cache/flush", func(c *fiber.Ctx) error {
		if err := repositories.CacheService.FlushAll(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "cache flush failed"})
		}
		return c.JSON(fiber.Map{"message": "cache flushed"})
	})
}
