package service

import (
	"context"
	"fmt"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/database"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReduceScoreAction turns a tagged score action into the update document
// that gets persisted. One reducer instead of ad hoc update building per
// branch, so every mutation path is enumerable and testable.
func ReduceScoreAction(a models.ScoreAction) (bson.M, error) {
	switch a.Action {
	case models.ActionScoreUpdate:
		return bson.M{"$set": bson.M{"score": a.Score}}, nil
	case models.ActionAchievementAdd:
		if a.Achievement == "" {
			return nil, fmt.Errorf("achievement is required for %s", a.Action)
		}
		return bson.M{"$push": bson.M{"achievements": a.Achievement}}, nil
	case models.ActionAchievementRemove:
		if a.Achievement == "" {
			return nil, fmt.Errorf("achievement is required for %s", a.Action)
		}
		return bson.M{"$pull": bson.M{"achievements": a.Achievement}}, nil
	case models.ActionScoreReset:
		return bson.M{"$set": bson.M{"score": 0}}, nil
	}
	return nil, fmt.Errorf("unknown score action %q", a.Action)
}

func roleCollection(role string) (string, error) {
	switch role {
	case "student":
		return database.CollStudents, nil
	case "member":
		return database.CollMembers, nil
	}
	return "", fmt.Errorf("unknown role %q", role)
}

// ApplyScoreAction reduces and persists a single action.
func ApplyScoreAction(ctx context.Context, db *mongo.Database, a models.ScoreAction) error {
	update, err := ReduceScoreAction(a)
	if err != nil {
		return err
	}
	coll, err := roleCollection(a.Role)
	if err != nil {
		return err
	}
	res, err := db.Collection(coll).UpdateOne(ctx, bson.M{"email": a.Email}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no %s with email %s", a.Role, a.Email)
	}
	return nil
}

// ApplyScoreActions persists a batch of actions with one bulk write per
// collection.
func ApplyScoreActions(ctx context.Context, db *mongo.Database, actions []models.ScoreAction) error {
	byColl := make(map[string][]mongo.WriteModel)
	for _, a := range actions {
		update, err := ReduceScoreAction(a)
		if err != nil {
			return err
		}
		coll, err := roleCollection(a.Role)
		if err != nil {
			return err
		}
		model := mongo.NewUpdateOneModel().
			SetFilter(bson.M{"email": a.Email}).
			SetUpdate(update)
		byColl[coll] = append(byColl[coll], model)
	}

	for coll, writes := range byColl {
		if _, err := db.Collection(coll).BulkWrite(ctx, writes); err != nil {
			return fmt.Errorf("bulk write on %s: %w", coll, err)
		}
	}
	return nil
}
