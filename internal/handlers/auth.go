package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/config"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/database"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/models"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/service"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewEmailService builds the multi-provider email service from config:
// MailerSend primary, Resend fallback, whichever are enabled.
func NewEmailService() *service.MultiProviderEmailService {
	cfg := config.GetConfig()
	var providers []service.EmailProvider

	if cfg.Email.MailerSend.Enabled {
		providers = append(providers, service.NewEmailService(
			cfg.Email.MailerSend.APIKey,
			cfg.Email.MailerSend.FromEmail,
			cfg.Email.MailerSend.FromName,
		))
	}
	if cfg.Email.Resend.Enabled {
		providers = append(providers, service.NewResendService(
			cfg.Email.Resend.APIKey,
			cfg.Email.Resend.FromEmail,
		))
	}

	log.Printf("Email service initialized with %d providers", len(providers))
	return service.NewMultiProviderEmailService(providers)
}

type AuthHandler struct {
	db           *mongo.Database
	emailService *service.MultiProviderEmailService
	studentOTP   *service.OTPEngine
	memberOTP    *service.OTPEngine
}

func NewAuthHandler(db *mongo.Database, emailService *service.MultiProviderEmailService, studentOTP, memberOTP *service.OTPEngine) *AuthHandler {
	return &AuthHandler{
		db:           db,
		emailService: emailService,
		studentOTP:   studentOTP,
		memberOTP:    memberOTP,
	}
}

func (h *AuthHandler) engineFor(role string) (*service.OTPEngine, string) {
	if role == "member" {
		return h.memberOTP, database.CollMembers
	}
	return h.studentOTP, database.CollStudents
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	engine, coll := h.engineFor(req.Role)
	ctx := c.Request.Context()

	// Check if user already exists
	err := h.db.Collection(coll).FindOne(ctx, bson.M{"email": req.Email}).Err()
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "User already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	now := time.Now()
	user := models.UserAccount{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Mobile:    req.Mobile,
		Password:  req.Password,
		FullName:  req.FullName,
		College:   req.College,
		Year:      req.Year,
		Status:    "pending_verification",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := h.db.Collection(coll).InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create user"})
		return
	}

	// Attach a fresh OTP to the new document and mail it. A failed send
	// rolls the record back; the account stays and can retry via login.
	if _, err := engine.Issue(ctx, req.Email, req.FullName); err != nil {
		log.Printf("Register: OTP issue failed for %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send OTP email"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully. Please check your email for verification code.",
		"user":    user.ToResponse(req.Role),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	engine, coll := h.engineFor(req.Role)
	ctx := c.Request.Context()

	var user models.UserAccount
	err := h.db.Collection(coll).FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments || (err == nil && user.Password != req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	if _, err := engine.Issue(ctx, req.Email, user.FullName); err != nil {
		log.Printf("Login: OTP issue failed for %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send OTP email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent to your email",
	})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	engine, coll := h.engineFor(req.Role)
	ctx := c.Request.Context()

	result, _, err := engine.Verify(ctx, req.Email, req.OTPCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	switch result {
	case service.OTPMatched:
		// fall through below
	case service.OTPMismatch:
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid OTP code"})
		return
	case service.OTPExpired:
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "OTP code has expired"})
		return
	case service.OTPTooManyAttempts:
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Too many attempts"})
		return
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "OTP expired or not found"})
		return
	}

	var user models.UserAccount
	if err := h.db.Collection(coll).FindOneAndUpdate(ctx,
		bson.M{"email": req.Email},
		bson.M{"$set": bson.M{"status": "active", "updated_at": time.Now()}},
	).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update user status"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate token"})
		return
	}

	// First verification gets a welcome mail; delivery problems only log.
	if user.Status == "pending_verification" {
		if err := h.emailService.SendWelcomeEmail(ctx, user.Email, user.FullName); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	user.Status = "active"
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP verified successfully",
		"token":   token,
		"user":    user.ToResponse(req.Role),
	})
}
