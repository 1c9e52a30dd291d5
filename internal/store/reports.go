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

// ReportRepository stores reports against listings
type ReportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{collection: db.Collection(ReportsCollection)}
}

// List returns one page of reports, newest first, and the total count
func (r *ReportRepository) List(ctx context.Context, page, pageSize int) ([]domain.Report, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, translate("count reports", err)
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip(page, pageSize)).SetLimit(int64(pageSize))
	cur, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, translate("list reports", err)
	}
	reports, err := decodeAll[domain.Report](ctx, cur)
	if err != nil {
		return nil, 0, translate("decode reports", err)
	}
	return reports, total, nil
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	report.ID = primitive.NewObjectID()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, report); err != nil {
		return primitive.NilObjectID, translate("create report", err)
	}
	return report.ID, nil
}

// Delete removes the report and returns it so the caller can act on the
// referenced bike
func (r *ReportRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var report domain.Report
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&report); err != nil {
		return nil, translate("delete report", err)
	}
	return &report, nil
}
