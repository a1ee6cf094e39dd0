package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"exchange-office-backend/internal/events"
	handler "exchange-office-backend/internal/handlers"
	"exchange-office-backend/internal/repository"
	"exchange-office-backend/internal/services/auth"
	"exchange-office-backend/internal/services/rates"
	"exchange-office-backend/internal/services/reporting"
	"exchange-office-backend/internal/services/settlement"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, bus *events.Bus, logger *slog.Logger) {
	vaultRepo := repository.NewVaultRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	rateRepo := repository.NewRateRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	rateService := rates.NewService(rateRepo, bus, logger)
	settlementService := settlement.NewService(db, rateService, bus, logger)
	reportingService := reporting.NewService(db, rateService)
	authService := auth.NewService(userRepo, sessionRepo)

	authHandler := handler.NewAuthHandler(authService)
	vaultHandler := handler.NewVaultHandler(vaultRepo, rateService)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	rateHandler := handler.NewRateHandler(rateService)
	transactionHandler := handler.NewTransactionHandler(settlementService, transactionRepo, auditRepo)
	reportHandler := handler.NewReportHandler(reportingService)
	settingsHandler := handler.NewSettingsHandler(db, bus)
	eventsHandler := handler.NewEventsHandler(bus)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(handler.RequireSession(authService))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)

	vaults := protected.Group("/vaults")
	vaults.GET("", vaultHandler.List)
	vaults.POST("", vaultHandler.Create)

	customers := protected.Group("/customers")
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)

	exchangeRates := protected.Group("/rates")
	exchangeRates.GET("/current", rateHandler.Current)
	exchangeRates.GET("", rateHandler.History)
	exchangeRates.POST("", rateHandler.Update)

	tx := protected.Group("/transactions")
	tx.GET("", transactionHandler.List)
	tx.POST("", transactionHandler.Create)
	tx.GET("/:id", transactionHandler.Get)
	tx.POST("/:id/confirm", transactionHandler.Confirm)
	tx.POST("/:id/approve", transactionHandler.Approve)
	tx.POST("/:id/cancel", transactionHandler.Cancel)

	protected.GET("/reports/summary", reportHandler.Summary)
	protected.GET("/reports", reportHandler.Report)

	settings := protected.Group("/settings")
	settings.POST("/reset", settingsHandler.Reset)
	settings.POST("/wipe", settingsHandler.Wipe)

	protected.GET("/events", eventsHandler.Stream)
}
