package routes

import (
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/handlers"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler, eventHandler *handlers.EventHandler, adminAuthHandler *handlers.AdminAuthHandler, adminHandler *handlers.AdminHandler) {
	// API v1
	v1 := r.Group("/api/v1")

	// Auth routes (no session required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/verify-otp", authHandler.VerifyOTP)
	}

	// User routes (require session)
	user := v1.Group("/user")
	user.Use(middleware.AuthRequired())
	{
		user.GET("", userHandler.GetUser)
		user.PUT("", userHandler.UpdateUser)
		user.GET("/profile", userHandler.GetProfile)
	}

	// Event routes (public browsing and registration)
	events := v1.Group("/events")
	{
		events.GET("", eventHandler.GetEvents)
		events.POST("", eventHandler.RegisterForEvent)
	}

	// Admin auth (no token required; this is where the token comes from)
	v1.POST("/admin/auth", adminAuthHandler.Authenticate)
	v1.GET("/admin/auth", adminAuthHandler.CheckToken)

	// Admin routes (require admin token)
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/events", adminHandler.GetEvents)
		admin.POST("/events", adminHandler.CreateEvent)
		admin.PUT("/events", adminHandler.UpdateEvent)
		admin.DELETE("/events", adminHandler.DeleteEvent)

		admin.GET("/leaderboard", adminHandler.GetLeaderboard)
		admin.PUT("/leaderboard", adminHandler.ApplyScoreAction)
		admin.POST("/leaderboard", adminHandler.ApplyScoreActionBatch)

		admin.GET("/themes", adminHandler.GetThemes)
		admin.PUT("/themes", adminHandler.UpdateThemes)

		admin.GET("/users", adminHandler.GetUsers)
		admin.PUT("/users", adminHandler.UpdateUser)
		admin.DELETE("/users", adminHandler.DeleteUser)

		admin.GET("/mail-check", adminHandler.MailCheck)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
