package store

import (
	"context" // Context for timeouts and cancellation

	"bike_market/internal/domain" // Importing domain models

	"go.mongodb.org/mongo-driver/bson"          // BSON documents
	"go.mongodb.org/mongo-driver/mongo"         // MongoDB driver
	"go.mongodb.org/mongo-driver/mongo/options" // Driver options
)

// CatalogRepository serves the read-only reference collections
type CatalogRepository struct {
	categories *mongo.Collection
	blogs      *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		categories: db.Collection(CategoriesCollection),
		blogs:      db.Collection(BlogsCollection),
	}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.categories.Find(ctx, bson.D{})
	if err != nil {
		return nil, translate("list categories", err)
	}
	categories, err := decodeAll[domain.Category](ctx, cur)
	return categories, translate("list categories", err)
}

// ListCategoryNames projects every category down to its name
func (r *CatalogRepository) ListCategoryNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	projection := bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 0}}
	cur, err := r.categories.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, translate("list category names", err)
	}
	categories, err := decodeAll[domain.Category](ctx, cur)
	if err != nil {
		return nil, translate("list category names", err)
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}

func (r *CatalogRepository) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.blogs.Find(ctx, bson.D{})
	if err != nil {
		return nil, translate("list blogs", err)
	}
	blogs, err := decodeAll[domain.Blog](ctx, cur)
	return blogs, translate("list blogs", err)
}

// UpsertCategory inserts the category unless one with the same name exists
func (r *CatalogRepository) UpsertCategory(ctx context.Context, c domain.Category) (bool, error) {
	return upsertBy(ctx, r.categories, "seed category", bson.M{"name": c.Name}, bson.M{"name": c.Name})
}

// UpsertBlog inserts the blog unless one with the same title exists
func (r *CatalogRepository) UpsertBlog(ctx context.Context, b domain.Blog) (bool, error) {
	return upsertBy(ctx, r.blogs, "seed blog", bson.M{"title": b.Title}, bson.M{"title": b.Title, "body": b.Body})
}

func upsertBy(ctx context.Context, coll *mongo.Collection, op string, filter, doc bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := coll.UpdateOne(ctx, filter, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
	if err != nil {
		return false, translate(op, err)
	}
	return res.UpsertedCount == 1, nil
}
