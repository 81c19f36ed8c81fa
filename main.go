package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"dialnexy/config"
	"dialnexy/middleware"
	"dialnexy/provider"
	"dialnexy/routes"
	"dialnexy/scheduler"
	"dialnexy/store"
)

func main() {
	// Initialize logger
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Optional Sentry error reporting
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			log.Fatalf("Failed to initialize Sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Build the scheduler with one dialer per supported platform
	providerTimeout := time.Duration(config.AppConfig.ProviderTimeoutSeconds) * time.Second
	sched := scheduler.New(
		store.NewGormStore(config.DB),
		[]provider.Dialer{
			provider.NewVapiDialer(config.AppConfig.VapiBaseURL, providerTimeout),
			provider.NewRetellDialer(config.AppConfig.RetellBaseURL, providerTimeout),
		},
		log,
	)

	// Start the internal interval worker unless an external cron drives the
	// trigger endpoint instead
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if config.AppConfig.SchedulerIntervalSeconds > 0 {
		interval := time.Duration(config.AppConfig.SchedulerIntervalSeconds) * time.Second
		worker := scheduler.NewWorker(sched, interval, log)
		go worker.Start(ctx)
	}

	// Setup routes
	routes.SetupSchedulerRoutes(app, sched, log)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Start server
	log.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
