// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"veridian/internal/config"
	"veridian/internal/handlers"
	"veridian/internal/middleware"
	"veridian/internal/repositories"
	"veridian/internal/services/dashboard"
	"veridian/internal/services/deposit"
	"veridian/internal/services/kyc"
	"veridian/internal/services/withdrawal"
	"veridian/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	kycRepo := repositories.NewKYCRepository(db, repositories.CacheService)
	txRepo := repositories.NewTransactionRepository(db)

	// File storage collaborator
	storageClient := storage.NewHTTPClient(storage.Config{
		BaseURL:      config.GetEnv("STORAGE_BASE_URL", "http://localhost:9000/v1/documents"),
		UploadPreset: config.GetEnv("STORAGE_UPLOAD_PRESET", "kyc-documents"),
		APIKey:       config.GetEnv("STORAGE_API_KEY", ""),
	})

	// Initialize services
	kycService := kyc.NewService(kycRepo, storageClient, kyc.Config{
		MaxFileSize:    config.GetIntEnv("KYC_MAX_FILE_SIZE", 10<<20),
		UploadAttempts: config.GetIntEnv("KYC_UPLOAD_ATTEMPTS", 3),
		RetryBaseDelay: config.GetDurationEnv("KYC_RETRY_BASE_DELAY", 0),
	})
	withdrawalService := withdrawal.NewService(kycRepo, txRepo)
	depositService := deposit.NewService(
		txRepo,
		config.GetEnv("DEPOSIT_BTC_ADDRESS", "bc1q8pr8h206plxct55s925vh6aghwh9dlvzmwtz2m"),
		config.GetEnv("STRIPE_SECRET_KEY", ""),
	)
	dashboardService := dashboard.NewService(kycRepo, txRepo)

	// Initialize handlers
	kycHandler := handlers.NewKYCHandler(kycService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	depositHandler := handlers.NewDepositHandler(depositService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	session := middleware.NewSessionMiddleware(config.GetEnv("SESSION_JWT_SECRET", "veridian"))

	api := app.Group("/api")

	// Public endpoints (no session required): the submission form posts the
	// clerk ID as a form field, matching the dashboard client.
	api.Post("/kyc", kycHandler.SubmitKYC)
	api.Get("/kyc", kycHandler.GetAllKYC)
	api.Get("/health", handlers.HealthCheck)

	// Session-scoped endpoints
	user := api.Group("/", session.Handler)
	user.Get("/kyc/status", kycHandler.GetStatus)
	user.Get("/user/balance", dashboardHandler.GetBalance)
	user.Get("/requestBalance", withdrawalHandler.GetPendingAmount)
	user.Post("/withdrawals", withdrawalHandler.RequestWithdrawal)
	user.Get("/transactions", dashboardHandler.GetTransactions)
	user.Get("/deposit/address", depositHandler.GetAddress)
	user.Post("/deposit/card", depositHandler.CardDeposit)

	// Root welcome route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Veridian API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})
}
