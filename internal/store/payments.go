package store

import (
	"context" // Context for timeouts and cancellation
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"time"    // Timestamps

	"bike_market/internal/domain" // Importing domain models

	"go.mongodb.org/mongo-driver/bson"           // BSON documents
	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB ObjectID
	"go.mongodb.org/mongo-driver/mongo"          // MongoDB driver
)

// PaymentRepository owns the payment log and the two flags a payment flips
type PaymentRepository struct {
	payments *mongo.Collection
	bookings *mongo.Collection
	bikes    *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{
		payments: db.Collection(PaymentCollection),
		bookings: db.Collection(BookingsCollection),
		bikes:    db.Collection(BikesCollection),
	}
}

// InsertPayment appends a payment log row. A second payment for the same
// booking fails with domain.ErrConflict through the unique bookingId index.
func (r *PaymentRepository) InsertPayment(ctx context.Context, p *domain.Payment) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	p.ID = primitive.NewObjectID()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := r.payments.InsertOne(ctx, p); err != nil {
		return primitive.NilObjectID, translate("insert payment", err)
	}
	return p.ID, nil
}

func (r *PaymentRepository) DeletePayment(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.payments.DeleteOne(ctx, bson.M{"_id": id})
	return translate("delete payment", err)
}

// MarkBookingPaid flips paid false->true and stores the transaction id.
// The booking must be for bikeID; a booking of another bike yields
// domain.ErrMismatch.
func (r *PaymentRepository) MarkBookingPaid(ctx context.Context, bookingID, bikeID primitive.ObjectID, transactionID string) error {
	const op = "mark booking paid"
	err := flip(ctx, r.bookings, op, bson.M{"_id": bookingID, "bikeId": bikeID}, "paid", bson.M{"transactionId": transactionID})
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	cctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	n, cerr := r.bookings.CountDocuments(cctx, bson.M{"_id": bookingID})
	if cerr != nil {
		return translate(op, cerr)
	}
	if n > 0 {
		return fmt.Errorf("%s: booking is for another bike: %w", op, domain.ErrMismatch)
	}
	return err
}

// UnmarkBookingPaid reverts MarkBookingPaid
func (r *PaymentRepository) UnmarkBookingPaid(ctx context.Context, bookingID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.bookings.UpdateOne(ctx, bson.M{"_id": bookingID},
		bson.M{"$set": bson.M{"paid": false}, "$unset": bson.M{"transactionId": ""}})
	return translate("unmark booking paid", err)
}

// MarkBikeSold flips sold false->true
func (r *PaymentRepository) MarkBikeSold(ctx context.Context, bikeID primitive.ObjectID) error {
	return flip(ctx, r.bikes, "mark bike sold", bson.M{"_id": bikeID}, "sold", nil)
}

// flip sets a boolean field to true on the document matching match, only if
// it is not already true. No matching document yields domain.ErrNotFound,
// an already set flag yields domain.ErrConflict.
func flip(ctx context.Context, coll *mongo.Collection, op string, match bson.M, field string, extra bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	set := bson.M{field: true}
	for k, v := range extra {
		set[k] = v
	}
	filter := bson.M{field: bson.M{"$ne": true}}
	for k, v := range match {
		filter[k] = v
	}
	res, err := coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return translate(op, err)
	}
	if res.MatchedCount == 1 {
		return nil
	}
	n, err := coll.CountDocuments(ctx, match)
	if err != nil {
		return translate(op, err)
	}
	if n == 0 {
		return translate(op, mongo.ErrNoDocuments)
	}
	return fmt.Errorf("%s: %s already set: %w", op, field, domain.ErrConflict)
}
