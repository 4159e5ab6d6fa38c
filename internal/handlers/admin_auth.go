package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/config"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/models"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/service"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthHandler gates the single configured admin identity behind
// password + OTP and issues the admin bearer token. Admin OTP records live
// in process memory only; a restart drops any pending login.
type AdminAuthHandler struct {
	engine *service.OTPEngine
}

func NewAdminAuthHandler(engine *service.OTPEngine) *AdminAuthHandler {
	return &AdminAuthHandler{engine: engine}
}

// Authenticate handles POST /admin/auth with action login or verify-otp.
func (h *AdminAuthHandler) Authenticate(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	switch req.Action {
	case "login":
		h.login(c, req)
	case "verify-otp":
		h.verifyOTP(c, req)
	}
}

func (h *AdminAuthHandler) login(c *gin.Context, req models.AdminLoginRequest) {
	cfg := config.GetConfig()

	if req.Email != cfg.Admin.Email || req.Password != cfg.Admin.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid admin credentials"})
		return
	}

	// A failed send must not leave a pending OTP behind; the engine rolls
	// the record back before reporting.
	if _, err := h.engine.Issue(c.Request.Context(), cfg.Admin.Email, "Admin"); err != nil {
		log.Printf("Admin login: OTP issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send OTP email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to admin email"})
}

func (h *AdminAuthHandler) verifyOTP(c *gin.Context, req models.AdminLoginRequest) {
	cfg := config.GetConfig()

	if req.Email != cfg.Admin.Email {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "OTP expired or not found"})
		return
	}

	// No code has a shape other than six digits; skip the store round trip
	// for anything else.
	if !utils.ValidOTP(req.OTPCode) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "OTP code must be 6 digits"})
		return
	}

	result, remaining, err := h.engine.Verify(c.Request.Context(), cfg.Admin.Email, req.OTPCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to verify OTP"})
		return
	}

	switch result {
	case service.OTPMatched:
		token := utils.GenerateAdminToken(cfg.Admin.Email, cfg.Admin.Secret)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Admin authenticated",
			"token":   token,
		})
	case service.OTPMismatch:
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Invalid OTP. %d attempts remaining", remaining),
		})
	case service.OTPTooManyAttempts:
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Too many attempts"})
	default: // expired or not found
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "OTP expired or not found"})
	}
}

// CheckToken handles GET /admin/auth, validating the bearer token.
func (h *AdminAuthHandler) CheckToken(c *gin.Context) {
	cfg := config.GetConfig()

	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || tokenString == authHeader {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header required"})
		return
	}

	payload, err := utils.ValidateAdminToken(tokenString, cfg.Admin.Email, cfg.Admin.Secret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "email": payload.Email})
}
