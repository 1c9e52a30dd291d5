// Package payments records a completed payment together with the booking
// and bike updates it implies.
package payments

import (
	"context" // Context for timeouts and cancellation
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"strings" // String joining

	"bike_market/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"                 // Logrus for structured logging
	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB ObjectID
)

// Store is the persistence the recorder drives
type Store interface {
	InsertPayment(ctx context.Context, p *domain.Payment) (primitive.ObjectID, error)
	DeletePayment(ctx context.Context, id primitive.ObjectID) error
	MarkBookingPaid(ctx context.Context, bookingID, bikeID primitive.ObjectID, transactionID string) error
	UnmarkBookingPaid(ctx context.Context, bookingID primitive.ObjectID) error
	MarkBikeSold(ctx context.Context, bikeID primitive.ObjectID) error
}

// Transactor runs fn atomically
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Step names, in execution order
const (
	StepInsertPayment = "insert_payment"
	StepMarkBooking   = "mark_booking_paid"
	StepMarkBike      = "mark_bike_sold"
)

// PartialFailureError reports a failed payment whose completed steps could
// not all be rolled back. Completed lists the steps still in effect.
type PartialFailureError struct {
	Cause     error
	Completed []string
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("payment partially recorded (%s): %v", strings.Join(e.Completed, ", "), e.Cause)
}

func (e *PartialFailureError) Unwrap() error { return e.Cause }

// Recorder inserts the payment log row, marks the booking paid and marks the
// bike sold. Either all three take effect or none do; when a rollback step
// itself fails a *PartialFailureError is returned.
type Recorder struct {
	store Store
	tx    Transactor // nil selects compensation instead of a transaction
}

func NewRecorder(store Store, tx Transactor) *Recorder {
	return &Recorder{store: store, tx: tx}
}

// Record stores p and returns the id of the payment log row
func (r *Recorder) Record(ctx context.Context, p *domain.Payment) (primitive.ObjectID, error) {
	if r.tx != nil {
		var id primitive.ObjectID
		err := r.tx.WithTransaction(ctx, func(ctx context.Context) error {
			var err error
			id, err = r.apply(ctx, p)
			return err
		})
		if err != nil {
			return primitive.NilObjectID, err
		}
		return id, nil
	}
	return r.compensating(ctx, p)
}

func (r *Recorder) apply(ctx context.Context, p *domain.Payment) (primitive.ObjectID, error) {
	id, err := r.store.InsertPayment(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if err := r.store.MarkBookingPaid(ctx, p.BookingID, p.BikeID, p.TransactionID); err != nil {
		return primitive.NilObjectID, err
	}
	if err := r.store.MarkBikeSold(ctx, p.BikeID); err != nil {
		return primitive.NilObjectID, err
	}
	return id, nil
}

// compensating runs the steps one by one and undoes the completed ones in
// reverse order when a later step fails
func (r *Recorder) compensating(ctx context.Context, p *domain.Payment) (primitive.ObjectID, error) {
	id, err := r.store.InsertPayment(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	completed := []string{StepInsertPayment}

	if err := r.store.MarkBookingPaid(ctx, p.BookingID, p.BikeID, p.TransactionID); err != nil {
		return primitive.NilObjectID, r.rollback(ctx, p, id, completed, err)
	}
	completed = append(completed, StepMarkBooking)

	if err := r.store.MarkBikeSold(ctx, p.BikeID); err != nil {
		return primitive.NilObjectID, r.rollback(ctx, p, id, completed, err)
	}
	return id, nil
}

func (r *Recorder) rollback(ctx context.Context, p *domain.Payment, id primitive.ObjectID, completed []string, cause error) error {
	// the request may have been cancelled; undo regardless
	ctx = context.WithoutCancel(ctx)
	for len(completed) > 0 {
		step := completed[len(completed)-1]
		var err error
		switch step {
		case StepMarkBooking:
			err = r.store.UnmarkBookingPaid(ctx, p.BookingID)
		case StepInsertPayment:
			err = r.store.DeletePayment(ctx, id)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"booking_id": p.BookingID.Hex(),
				"bike_id":    p.BikeID.Hex(),
				"step":       step,
				"error":      err.Error(),
			}).Error("Payment rollback failed")
			return &PartialFailureError{Cause: errors.Join(cause, err), Completed: completed}
		}
		completed = completed[:len(completed)-1]
	}
	return cause
}
