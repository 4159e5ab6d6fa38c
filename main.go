package main

import (
	"context"
	"fmt"
	"log"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/config"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/database"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/handlers"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/middleware"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/routes"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Secrets come from the environment; .env is for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	// Load YAML configuration
	if err := config.LoadConfig(); err != nil {
		log.Printf("Warning: Failed to load YAML config: %v", err)
		log.Println("Using default configuration...")
	}

	// Initialize database
	client, db, err := database.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.UserExtractionMiddleware())
	r.Use(middleware.CustomLoggingMiddleware())

	// Shared email service; the admin OTP engine keeps its records in
	// process memory with a 3-attempt cap.
	emailService := handlers.NewEmailService()
	adminEngine := service.NewOTPEngine(service.NewMemoryOTPStore(), emailService, service.AdminMaxAttempts)

	// Login/registration codes live on the user document and carry no
	// attempt cap, unlike the admin flow.
	studentEngine := service.NewOTPEngine(service.NewUserOTPStore(db, database.CollStudents), emailService, 0)
	memberEngine := service.NewOTPEngine(service.NewUserOTPStore(db, database.CollMembers), emailService, 0)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, emailService, studentEngine, memberEngine)
	userHandler := handlers.NewUserHandler(db)
	eventHandler := handlers.NewEventHandler(db)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminEngine)
	adminHandler := handlers.NewAdminHandler(db, emailService)

	// Setup routes
	routes.SetupRoutes(r, authHandler, userHandler, eventHandler, adminAuthHandler, adminHandler)

	// Start server
	appConfig := config.GetConfig()
	addr := fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.Port)
	log.Printf("Starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
