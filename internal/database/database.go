package database

import (
	"context"
	"log"
	"time"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. User type is positional: a record lives either in
// students or members, never both.
const (
	CollStudents      = "students"
	CollMembers       = "members"
	CollEvents        = "events"
	CollDeletedEvents = "deleted_events"
	CollDeletedUsers  = "deleted_users"
	CollSiteSettings  = "site_settings"
)

// UserCollections lists the two collections that partition user accounts.
var UserCollections = []string{CollStudents, CollMembers}

func InitDB() (*mongo.Client, *mongo.Database, error) {
	cfg := config.GetConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, err
	}

	// Ping to ensure the connection is established before serving requests.
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	log.Println("Database connected successfully")
	return client, client.Database(cfg.Mongo.Database), nil
}
