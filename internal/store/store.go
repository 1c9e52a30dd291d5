package store

import (
	"context" // Context for timeouts and cancellation
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"time"    // Timeouts

	"bike_market/internal/domain" // Importing domain models

	"go.mongodb.org/mongo-driver/mongo" // MongoDB driver
)

// Collection names
const (
	CategoriesCollection = "categories"
	BikesCollection      = "bikes"
	UsersCollection      = "users"
	BookingsCollection   = "bookings"
	PaymentCollection    = "payment"
	ReportsCollection    = "reports"
	AdvertisesCollection = "advertises"
	BlogsCollection      = "blogs"
)

const opTimeout = 5 * time.Second

// translate maps driver errors onto the domain sentinels
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]T, error) {
	defer cur.Close(ctx)
	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// skip returns the number of documents to skip for a 1-based page
func skip(page, pageSize int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * pageSize)
}

// Transactor runs a function inside a MongoDB multi-document transaction.
// It requires a replica set or sharded cluster.
type Transactor struct {
	client *mongo.Client
}

// NewTransactor needs a client connected to a replica set
func NewTransactor(client *mongo.Client) *Transactor {
	return &Transactor{client: client}
}

// WithTransaction runs fn in a session transaction, retrying on transient errors
func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
