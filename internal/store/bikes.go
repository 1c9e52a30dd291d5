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

// BikeRepository stores bike listings
type BikeRepository struct {
	collection *mongo.Collection
}

func NewBikeRepository(db *mongo.Database) *BikeRepository {
	return &BikeRepository{collection: db.Collection(BikesCollection)}
}

func (r *BikeRepository) ListByCategory(ctx context.Context, category string) ([]domain.Bike, error) {
	return r.find(ctx, "list bikes by category", bson.M{"category": category})
}

func (r *BikeRepository) ListBySeller(ctx context.Context, email string) ([]domain.Bike, error) {
	return r.find(ctx, "list bikes by seller", bson.M{"email": email})
}

func (r *BikeRepository) find(ctx context.Context, op string, filter bson.M) ([]domain.Bike, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"postedAt": -1}))
	if err != nil {
		return nil, translate(op, err)
	}
	bikes, err := decodeAll[domain.Bike](ctx, cur)
	return bikes, translate(op, err)
}

func (r *BikeRepository) Get(ctx context.Context, id primitive.ObjectID) (*domain.Bike, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var bike domain.Bike
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bike); err != nil {
		return nil, translate("get bike", err)
	}
	return &bike, nil
}

// Create inserts a new listing. The bike is never stored as sold.
func (r *BikeRepository) Create(ctx context.Context, bike *domain.Bike) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	bike.ID = primitive.NewObjectID()
	bike.Sold = false
	if bike.PostedAt.IsZero() {
		bike.PostedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, bike); err != nil {
		return primitive.NilObjectID, translate("create bike", err)
	}
	return bike.ID, nil
}

// DeleteOwned removes the bike only when it belongs to the seller and
// returns the removed document.
func (r *BikeRepository) DeleteOwned(ctx context.Context, id primitive.ObjectID, email string) (*domain.Bike, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var bike domain.Bike
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id, "email": email}).Decode(&bike)
	if err != nil {
		return nil, translate("delete bike", err)
	}
	return &bike, nil
}

// Delete removes a bike regardless of owner and reports how many matched
func (r *BikeRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, translate("delete bike", err)
	}
	return res.DeletedCount, nil
}
