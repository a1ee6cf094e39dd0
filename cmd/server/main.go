package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"exchange-office-backend/internal/config"
	"exchange-office-backend/internal/events"
	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/notifications"
	"exchange-office-backend/internal/routes"
	"exchange-office-backend/internal/seed"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := config.InitDB()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Vault{},
		&models.Customer{},
		&models.ExchangeRate{},
		&models.Transaction{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	bus := events.NewBus()
	stopNotifier := notifications.New(logger).Watch(bus)
	defer stopNotifier()

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, bus, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
