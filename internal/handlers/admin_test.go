package handlers

import (
	"context"
	"testing"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestArchive(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	eventDoc := bson.D{
		{Key: "_id", Value: "ev-1"},
		{Key: "title", Value: "CTF Finals"},
	}

	mt.Run("copies into the deleted collection before removing", func(mt *mtest.T) {
		h := NewAdminHandler(mt.DB, nil)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "csrippers.events", mtest.FirstBatch, eventDoc),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		err := h.archive(context.Background(), database.CollEvents, database.CollDeletedEvents, bson.M{"_id": "ev-1"})
		require.NoError(mt, err)

		find := mt.GetStartedEvent()
		require.Equal(mt, "find", find.CommandName)
		insert := mt.GetStartedEvent()
		require.Equal(mt, "insert", insert.CommandName)
		assert.Contains(mt, insert.Command.String(), `"deleted_at"`)
		del := mt.GetStartedEvent()
		require.Equal(mt, "delete", del.CommandName)
	})

	mt.Run("removes the archived copy when the delete fails", func(mt *mtest.T) {
		h := NewAdminHandler(mt.DB, nil)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "csrippers.events", mtest.FirstBatch, eventDoc),
			mtest.CreateSuccessResponse(),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    8,
				Message: "delete failed",
				Name:    "UnknownError",
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		err := h.archive(context.Background(), database.CollEvents, database.CollDeletedEvents, bson.M{"_id": "ev-1"})
		require.Error(mt, err)

		for _, want := range []string{"find", "insert", "delete", "delete"} {
			evt := mt.GetStartedEvent()
			require.NotNil(mt, evt)
			assert.Equal(mt, want, evt.CommandName)
		}
	})

	mt.Run("missing source document surfaces as not found", func(mt *mtest.T) {
		h := NewAdminHandler(mt.DB, nil)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "csrippers.events", mtest.FirstBatch),
		)

		err := h.archive(context.Background(), database.CollEvents, database.CollDeletedEvents, bson.M{"_id": "ghost"})
		require.Error(mt, err)
	})
}
