package models

import (
	"time"
)

type Event struct {
	ID           string    `json:"id" bson:"_id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Date         time.Time `json:"date" bson:"date"`
	Location     string    `json:"location,omitempty" bson:"location,omitempty"`
	Capacity     int       `json:"capacity" bson:"capacity"`
	Participants []string  `json:"participants" bson:"participants"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

type EventCreateRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity" binding:"required,min=1"`
}

type EventUpdateRequest struct {
	ID          string     `json:"id" binding:"required"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	Capacity    int        `json:"capacity"`
}

type EventRegisterRequest struct {
	EventID string `json:"event_id" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
}
