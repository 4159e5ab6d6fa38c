package handlers

import (
	"net/http"
	"time"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/database"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventHandler struct {
	db *mongo.Database
}

func NewEventHandler(db *mongo.Database) *EventHandler {
	return &EventHandler{db: db}
}

// GetEvents lists events, soonest first.
func (h *EventHandler) GetEvents(c *gin.Context) {
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

// RegisterForEvent adds a participant, refusing duplicates and full events.
func (h *EventHandler) RegisterForEvent(c *gin.Context) {
	var req models.EventRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var event models.Event
	err := h.db.Collection(database.CollEvents).FindOne(ctx, bson.M{"_id": req.EventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	for _, p := range event.Participants {
		if p == req.Email {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Already registered for this event"})
			return
		}
	}
	if event.Capacity > 0 && len(event.Participants) >= event.Capacity {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Event is full"})
		return
	}

	_, err = h.db.Collection(database.CollEvents).UpdateOne(ctx,
		bson.M{"_id": req.EventID},
		bson.M{
			"$push": bson.M{"participants": req.Email},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to register"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registered for event"})
}
