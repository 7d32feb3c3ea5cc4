// Package main is the entry point for the API server. It initializes
// configuration, telemetry, the databases and the HTTP stack, then serves.
package main

import (
	"context"
	"time"

	"linkpay/internal/config"
	"linkpay/internal/repositories"
	"linkpay/internal/routes"
	"linkpay/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	telemetry.InitLogger()
	defer telemetry.Logger.Sync()

	if err := repositories.InitDB(); err != nil {
		telemetry.Logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		telemetry.Logger.Fatal("Failed to get database instance", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		telemetry.Logger.Fatal("Failed to ping database", zap.Error(err))
	}
	telemetry.Logger.Info("Connected to PostgreSQL with connection pooling")

	// Resolution cache entries from a previous run may describe stale
	// method configuration. Start from a clean cache.
	if repositories.CacheService != nil {
		if err := repositories.CacheService.FlushAll(context.Background()); err != nil {
			telemetry.Logger.Warn("Failed to flush Redis cache", zap.Error(err))
		}
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			telemetry.Logger.Warn("Failed to close database connection", zap.Error(err))
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				telemetry.Logger.Warn("Failed to close Redis connection", zap.Error(err))
			}
		}
	}()

	// Periodic connection pool stats
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			stats := sqlDB.Stats()
			telemetry.Logger.Debug("DB pool stats",
				zap.Int("open", stats.OpenConnections),
				zap.Int("idle", stats.Idle),
				zap.Int("in_use", stats.InUse),
				zap.Int64("wait_count", stats.WaitCount),
				zap.Duration("wait_duration", stats.WaitDuration),
			)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName: "linkpay",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Rate limit the abuse-prone public endpoints
	for _, path := range []string{
		"/api/register",
		"/api/login",
		"/api/checkout/:slug/payments",
		"/api/pay/:id/proof",
	} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        config.GetIntEnv("RATE_LIMIT_MAX", 10),
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(429).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Static("/uploads", config.GetEnv("UPLOAD_DIR", "./uploads"))

	routes.SetupRoutes(app, repositories.DB)

	telemetry.Logger.Fatal("Server stopped",
		zap.Error(app.Listen(":"+config.GetEnv("PORT", "3000"))))
}
