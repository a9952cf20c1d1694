package routes

import (
	"log"
	"os"

	controller "zapcontacts/controllers"
	"zapcontacts/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize logger
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (no authentication required)
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Google OAuth routes
	auth.Get("/google", controller.GoogleOAuth)
	auth.Get("/google/callback", controller.GoogleOAuthCallback)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/logout", controller.Logout)
	protectedAuth.Post("/change-password", controller.ChangePassword)
	protectedAuth.Get("/me", controller.GetCurrentUser)

	// OTP routes group
	otp := app.Group("/otp", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	otp.Post("/send", controller.SendOTP)
	otp.Post("/verify", controller.VerifyOTP)
	otp.Post("/resend", controller.ResendOTP)

	// Payment routes. The webhook stays public since Stripe signs its
	// own requests instead of carrying a JWT.
	payment := app.Group("/payment")
	payment.Post("/create-intent", middleware.Protected(), controller.CreateUpgradeIntent)
	payment.Post("/webhook", controller.HandlePaymentWebhook)

	// Log initialization
	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize controllers with their respective loggers
	contactController := controller.NewContactController(db, log.New(os.Stdout, "CONTACT: ", log.LstdFlags))
	tagController := controller.NewTagController(db, log.New(os.Stdout, "TAG: ", log.LstdFlags))
	interactionController := controller.NewInteractionController(db, log.New(os.Stdout, "INTERACTION: ", log.LstdFlags))
	pipelineController := controller.NewPipelineController(db, log.New(os.Stdout, "PIPELINE: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))
	importController := controller.NewImportController(db, log.New(os.Stdout, "IMPORT: ", log.LstdFlags))
	profileController := controller.NewProfileController(db, log.New(os.Stdout, "PROFILE: ", log.LstdFlags))

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Contact routes
	contacts := api.Group("/contacts")
	contacts.Get("/snapshot", contactController.GetSnapshot)
	contacts.Post("/", contactController.CreateContact)
	contacts.Get("/", contactController.GetContacts)
	contacts.Get("/:id", contactController.GetContact)
	contacts.Put("/:id", contactController.UpdateContact)
	contacts.Delete("/:id", contactController.DeleteContact)
	contacts.Get("/:id/whatsapp", contactController.GetWhatsAppLink)
	contacts.Get("/:id/vcard", contactController.ExportVCard)
	contacts.Put("/:id/tags", tagController.AssignTags)
	contacts.Get("/:id/interaction", interactionController.GetInteraction)
	contacts.Put("/:id/interaction", interactionController.SaveInteraction)
	contacts.Put("/:id/stage", pipelineController.MoveStage)

	// Tag routes
	tags := api.Group("/tags")
	tags.Post("/", tagController.CreateTag)
	tags.Get("/", tagController.GetTags)
	tags.Delete("/:id", tagController.DeleteTag)

	// Pipeline board
	api.Get("/pipeline/board", pipelineController.GetBoard)

	// Dashboard routes
	api.Get("/dashboard/stats", dashboardController.GetDashboardStats)

	// Profile routes
	profile := api.Group("/profile")
	profile.Put("/", profileController.UpdateProfile)
	profile.Get("/notifications", profileController.GetNotificationPreferences)
	profile.Put("/notifications", profileController.UpdateNotificationPreferences)

	// Todo routes
	todos := api.Group("/todos")
	todos.Get("/", profileController.GetTodos)
	todos.Post("/", profileController.CreateTodo)
	todos.Put("/:id", profileController.UpdateTodo)
	todos.Delete("/:id", profileController.DeleteTodo)

	// Import routes with rate limiting
	imports := api.Group("/import", middleware.ImportRateLimiter())
	imports.Post("/google", importController.ImportGoogleContacts)
	imports.Post("/contacts", importController.ImportDeviceContacts)

	// WebSocket route for import progress
	app.Get("/api/v1/import/progress", websocket.New(func(c *websocket.Conn) {
		controller.HandleImportProgressWS(c)
	}))

	// Log initialization
	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize Stripe
	controller.InitStripe()

	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	SetupAuthRoutes(app, db)

	// Setup API routes
	SetupAPIRoutes(app, db)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
