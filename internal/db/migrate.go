package db

import (
	"context" // Context for index creation

	"bike_market/internal/store" // Collection names

	"github.com/sirupsen/logrus"                // Logrus for structured logging
	"go.mongodb.org/mongo-driver/bson"          // BSON documents
	"go.mongodb.org/mongo-driver/mongo"         // MongoDB driver
	"go.mongodb.org/mongo-driver/mongo/options" // Driver options
)

// Indexes lists the indexes each collection needs
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		store.UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}, // One account per email
			{Keys: bson.D{{Key: "type", Value: 1}}},
		},
		store.BikesCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "postedAt", Value: -1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		store.CategoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		store.BookingsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		store.PaymentCollection: {
			{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)}, // One payment per booking
		},
		store.ReportsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		store.AdvertisesCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
	}
}

// Migrate creates every index. Creating an index that already exists is a no-op.
func Migrate(ctx context.Context, database *mongo.Database) error {
	for name, models := range Indexes() {
		created, err := database.Collection(name).Indexes().CreateMany(ctx, models)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"collection": name,
				"error":      err.Error(),
			}).Error("Index creation failed")
			return err
		}
		logrus.WithFields(logrus.Fields{
			"collection": name,
			"indexes":    created,
		}).Info("Indexes ensured")
	}
	logrus.Info("Migration completed.")
	return nil
}
