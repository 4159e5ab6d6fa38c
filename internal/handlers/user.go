package handlers

import (
	"net/http"
	"time"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/database"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserHandler struct {
	db *mongo.Database
}

func NewUserHandler(db *mongo.Database) *UserHandler {
	return &UserHandler{db: db}
}

func sessionIdentity(c *gin.Context) (email, role, coll string, ok bool) {
	emailVal, exists := c.Get("user_email")
	if !exists {
		return "", "", "", false
	}
	roleVal, exists := c.Get("user_role")
	if !exists {
		return "", "", "", false
	}
	email, role = emailVal.(string), roleVal.(string)
	coll = database.CollStudents
	if role == "member" {
		coll = database.CollMembers
	}
	return email, role, coll, true
}

func (h *UserHandler) GetUser(c *gin.Context) {
	email, role, coll, ok := sessionIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var user models.UserAccount
	err := h.db.Collection(coll).FindOne(c.Request.Context(), bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.ToResponse(role)})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	email, _, coll, ok := sessionIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.FullName != "" {
		set["full_name"] = req.FullName
	}
	if req.Mobile != "" {
		set["mobile"] = req.Mobile
	}
	if req.College != "" {
		set["college"] = req.College
	}
	if req.Year != "" {
		set["year"] = req.Year
	}
	if req.Skills != nil {
		set["skills"] = req.Skills
	}
	if req.AvatarURL != "" {
		set["avatar_url"] = req.AvatarURL
	}

	res, err := h.db.Collection(coll).UpdateOne(c.Request.Context(), bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update user"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated"})
}

// GetProfile returns the account plus leaderboard standing.
func (h *UserHandler) GetProfile(c *gin.Context) {
	email, role, coll, ok := sessionIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var user models.UserAccount
	err := h.db.Collection(coll).FindOne(c.Request.Context(), bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"user":         user.ToResponse(role),
		"score":        user.Score,
		"achievements": user.Achievements,
	})
}
