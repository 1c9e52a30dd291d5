package store

import (
	"context" // Context for timeouts and cancellation

	"bike_market/internal/domain" // Importing domain models

	"go.mongodb.org/mongo-driver/bson"           // BSON documents
	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB ObjectID
	"go.mongodb.org/mongo-driver/mongo"          // MongoDB driver
)

// BookingRepository stores buyers' bookings
type BookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{collection: db.Collection(BookingsCollection)}
}

// Create inserts a new unpaid booking
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	booking.ID = primitive.NewObjectID()
	booking.Paid = false
	booking.TransactionID = ""
	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return primitive.NilObjectID, translate("create booking", err)
	}
	return booking.ID, nil
}

func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, translate("list bookings", err)
	}
	bookings, err := decodeAll[domain.Booking](ctx, cur)
	return bookings, translate("list bookings", err)
}

func (r *BookingRepository) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var booking domain.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return nil, translate("get booking", err)
	}
	return &booking, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate("delete booking", err)
	}
	if res.DeletedCount == 0 {
		return translate("delete booking", mongo.ErrNoDocuments)
	}
	return nil
}
