package store

import (
	"context" // Context for timeouts and cancellation
	"time"    // Timestamps

	"bike_market/internal/domain" // Importing domain models

	"go.mongodb.org/mongo-driver/bson"           // BSON documents
	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB ObjectID
	"go.mongodb.org/mongo-driver/mongo"          // MongoDB driver
	"go.mongodb.org/mongo-driver/mongo/options"  // Driver options
)

// AdvertiseRepository stores promotional listings
type AdvertiseRepository struct {
	collection *mongo.Collection
}

func NewAdvertiseRepository(db *mongo.Database) *AdvertiseRepository {
	return &AdvertiseRepository{collection: db.Collection(AdvertisesCollection)}
}

func (r *AdvertiseRepository) List(ctx context.Context) ([]domain.Advertise, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, translate("list advertises", err)
	}
	ads, err := decodeAll[domain.Advertise](ctx, cur)
	return ads, translate("list advertises", err)
}

func (r *AdvertiseRepository) Create(ctx context.Context, ad *domain.Advertise) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ad.ID = primitive.NewObjectID()
	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, ad); err != nil {
		return primitive.NilObjectID, translate("create advertise", err)
	}
	return ad.ID, nil
}

// DeleteOwned removes the advertisement only when the seller owns it
func (r *AdvertiseRepository) DeleteOwned(ctx context.Context, id primitive.ObjectID, email string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "email": email})
	if err != nil {
		return translate("delete advertise", err)
	}
	if res.DeletedCount == 0 {
		return translate("delete advertise", mongo.ErrNoDocuments)
	}
	return nil
}
