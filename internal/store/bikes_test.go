package store

import (
	"context"
	"testing"

	"bike_market/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreateBikeStoresDetailsInline(t *testing.T) {
	mt := newMock(t)

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))
		price := 0.0
		bike := &domain.Bike{
			Category: "Road",
			Email:    "seller@x.com",
			Price:    &price,
			Sold:     true,
			Details:  bson.M{"model": "X1"},
		}

		id, err := NewBikeRepository(mt.DB).Create(context.Background(), bike)
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())

		doc := mt.GetStartedEvent().Command.Lookup("documents", "0").Document()
		assert.Equal(mt, "X1", doc.Lookup("model").StringValue())
		assert.Equal(mt, 0.0, doc.Lookup("price").Double())
		assert.False(mt, doc.Lookup("sold").Boolean())
		assert.False(mt, doc.Lookup("postedAt").Time().IsZero())
	})
}

func TestDeleteOwnedBike(t *testing.T) {
	mt := newMock(t)

	mt.Run("owner", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "category", Value: "Road"},
			{Key: "email", Value: "seller@x.com"},
			{Key: "model", Value: "X1"},
		}}))

		bike, err := NewBikeRepository(mt.DB).DeleteOwned(context.Background(), id, "seller@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, bike.ID)
		assert.Equal(mt, "X1", bike.Details["model"])

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, id, cmd.Lookup("query", "_id").ObjectID())
		assert.Equal(mt, "seller@x.com", cmd.Lookup("query", "email").StringValue())
		assert.True(mt, cmd.Lookup("remove").Boolean())
	})

	mt.Run("not the owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := NewBikeRepository(mt.DB).DeleteOwned(context.Background(), primitive.NewObjectID(), "rival@x.com")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}
