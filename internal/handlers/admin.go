package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminHandler struct {
	db           *mongo.Database
	emailService *service.MultiProviderEmailService
}

func NewAdminHandler(db *mongo.Database, emailService *service.MultiProviderEmailService) *AdminHandler {
	return &AdminHandler{db: db, emailService: emailService}
}

// archive copies a document into the parallel deleted_* collection before
// removing it from the active one. Soft delete with audit, never a hard
// delete.
func (h *AdminHandler) archive(ctx context.Context, from, to string, filter bson.M) error {
	var doc bson.M
	if err := h.db.Collection(from).FindOne(ctx, filter).Decode(&doc); err != nil {
		return err
	}
	doc["deleted_at"] = time.Now()
	if _, err := h.db.Collection(to).InsertOne(ctx, doc); err != nil {
		return err
	}
	if _, err := h.db.Collection(from).DeleteOne(ctx, filter); err != nil {
		// The two writes are not transactional. Best effort: remove the
		// archived copy again so the document does not exist in both
		// collections; if that also fails the duplicate stays until the
		// next delete attempt.
		if _, rbErr := h.db.Collection(to).DeleteOne(ctx, bson.M{"_id": doc["_id"]}); rbErr != nil {
			return fmt.Errorf("archive delete failed: %v (rollback also failed: %w)", err, rbErr)
		}
		return err
	}
	return nil
}

// ---- Events ----

func (h *AdminHandler) GetEvents(c *gin.Context) {
	ctx := c.Request.Context()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := h.db.Collection(database.CollEvents).Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch events"})
		return
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to decode events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

func (h *AdminHandler) CreateEvent(c *gin.Context) {
	var req models.EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	now := time.Now()
	event := models.Event{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Location:     req.Location,
		Capacity:     req.Capacity,
		Participants: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.db.Collection(database.CollEvents).InsertOne(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "event": event})
}

func (h *AdminHandler) UpdateEvent(c *gin.Context) {
	var req models.EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Description != "" {
		set["description"] = req.Description
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Location != "" {
		set["location"] = req.Location
	}
	if req.Capacity > 0 {
		set["capacity"] = req.Capacity
	}

	res, err := h.db.Collection(database.CollEvents).UpdateOne(c.Request.Context(),
		bson.M{"_id": req.ID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update event"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event updated"})
}

func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Event id is required"})
		return
	}

	err := h.archive(c.Request.Context(), database.CollEvents, database.CollDeletedEvents, bson.M{"_id": id})
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event archived"})
}

// ---- Leaderboard ----

func (h *AdminHandler) GetLeaderboard(c *gin.Context) {
	ctx := c.Request.Context()

	standings := []models.LeaderboardEntry{}
	for _, coll := range database.UserCollections {
		opts := options.Find().SetSort(bson.D{{Key: "score", Value: -1}})
		cursor, err := h.db.Collection(coll).Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch leaderboard"})
			return
		}

		entries := []models.LeaderboardEntry{}
		if err := cursor.All(ctx, &entries); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to decode leaderboard"})
			return
		}
		standings = append(standings, entries...)
	}

	// Merge the two collections into one ordering.
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "leaderboard": standings})
}

func (h *AdminHandler) ApplyScoreAction(c *gin.Context) {
	var req models.ScoreAction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := service.ApplyScoreAction(c.Request.Context(), h.db, req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Score action applied"})
}

func (h *AdminHandler) ApplyScoreActionBatch(c *gin.Context) {
	var req models.ScoreActionBatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := service.ApplyScoreActions(c.Request.Context(), h.db, req.Actions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Score actions applied", "count": len(req.Actions)})
}

// ---- Themes ----

func (h *AdminHandler) GetThemes(c *gin.Context) {
	var settings models.SiteSettings
	err := h.db.Collection(database.CollSiteSettings).
		FindOne(c.Request.Context(), bson.M{"_id": models.SiteSettingsID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusOK, gin.H{"success": true, "settings": models.SiteSettings{ID: models.SiteSettingsID}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

func (h *AdminHandler) UpdateThemes(c *gin.Context) {
	var req models.SiteSettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.MenuBarSkin != "" {
		set["menu_bar_skin"] = req.MenuBarSkin
	}
	if req.DockStyle != "" {
		set["dock_style"] = req.DockStyle
	}
	if req.Wallpaper != "" {
		set["wallpaper"] = req.Wallpaper
	}
	if req.AccentColor != "" {
		set["accent_color"] = req.AccentColor
	}

	opts := options.Update().SetUpsert(true)
	_, err := h.db.Collection(database.CollSiteSettings).UpdateOne(c.Request.Context(),
		bson.M{"_id": models.SiteSettingsID}, bson.M{"$set": set}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings updated"})
}

// ---- Users ----

func (h *AdminHandler) GetUsers(c *gin.Context) {
	ctx := c.Request.Context()
	status := c.Query("status")

	filter := bson.M{}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	users := []models.UserResponse{}
	for _, coll := range database.UserCollections {
		role := "student"
		if coll == database.CollMembers {
			role = "member"
		}

		cursor, err := h.db.Collection(coll).Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch users"})
			return
		}

		accounts := []models.UserAccount{}
		if err := cursor.All(ctx, &accounts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to decode users"})
			return
		}
		for _, u := range accounts {
			users = append(users, u.ToResponse(role))
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users, "total": len(users)})
}

type adminUserUpdateRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Role   string `json:"role" binding:"required,oneof=student member"`
	Status string `json:"status"`
	models.UserUpdateRequest
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req adminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	coll := database.CollStudents
	if req.Role == "member" {
		coll = database.CollMembers
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Status != "" {
		set["status"] = req.Status
	}
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

	res, err := h.db.Collection(coll).UpdateOne(c.Request.Context(), bson.M{"email": req.Email}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update user"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated"})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	email := c.Query("email")
	role := c.Query("role")
	if !utils.ValidEmail(email) || (role != "student" && role != "member") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email and role are required"})
		return
	}

	coll := database.CollStudents
	if role == "member" {
		coll = database.CollMembers
	}

	err := h.archive(c.Request.Context(), coll, database.CollDeletedUsers, bson.M{"email": email})
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User archived"})
}

// ---- Diagnostics ----

// MailCheck sends a probe email to the admin address with a fixed 10-second
// deadline.
func (h *AdminHandler) MailCheck(c *gin.Context) {
	cfg := config.GetConfig()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	start := time.Now()
	err := h.emailService.SendWelcomeEmail(ctx, cfg.Admin.Email, "Admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Mail delivery check failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Mail delivery verified",
		"latency_ms": time.Since(start).Milliseconds(),
	})
}
