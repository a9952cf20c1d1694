package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"zapcontacts/config"
	"zapcontacts/middleware"
	"zapcontacts/routes"
	"zapcontacts/utils"
	"zapcontacts/worker"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "SERVER: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize error reporting
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize OTP mailer
	utils.InitEmailConfig(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUsername,
		config.AppConfig.SMTPPassword,
		config.AppConfig.FromEmail,
	)

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Initialize and start follow-up reminder worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if config.AppConfig.Twilio.AccountSID != "" {
		followUpWorker := worker.NewFollowUpWorker(config.DB, log.New(os.Stdout, "FOLLOWUP: ", log.LstdFlags))
		go followUpWorker.Start(ctx)
	} else {
		logger.Println("Twilio not configured, follow-up reminders disabled")
	}

	// Setup routes
	routes.SetupRoutes(app, config.DB)

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
