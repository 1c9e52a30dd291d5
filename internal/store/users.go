package store

import (
	"context" // Context for timeouts and cancellation

	"bike_market/internal/domain" // Importing domain models

	"go.mongodb.org/mongo-driver/bson"           // BSON documents
	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB ObjectID
	"go.mongodb.org/mongo-driver/mongo"          // MongoDB driver
	"go.mongodb.org/mongo-driver/mongo/options"  // Driver options
)

// UserRepository stores accounts keyed by email
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(UsersCollection)}
}

// FindByEmail returns domain.ErrNotFound when no user has the email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user domain.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate("find user by email", err)
	}
	return &user, nil
}

// Register inserts the user unless one with the same email exists.
// The insert is a single upsert keyed by email, so concurrent registrations
// of one address produce one document.
func (r *UserRepository) Register(ctx context.Context, user *domain.User) (domain.RegisterResult, primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := bson.M{"email": user.Email, "type": user.Type, "verify": false}
	if user.Name != "" {
		doc["name"] = user.Name
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		// lost the race against another upsert of the same email
		return domain.RegisterExisted, primitive.NilObjectID, nil
	}
	if err != nil {
		return 0, primitive.NilObjectID, translate("register user", err)
	}
	if res.UpsertedCount == 0 {
		return domain.RegisterExisted, primitive.NilObjectID, nil
	}
	id, _ := res.UpsertedID.(primitive.ObjectID)
	user.ID = id
	return domain.RegisterCreated, id, nil
}

// ListByRole returns one page of users of the given type and the total count
func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role, page, pageSize int) ([]domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"type": role}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate("count users", err)
	}
	opts := options.Find().SetSkip(skip(page, pageSize)).SetLimit(int64(pageSize)).SetSort(bson.M{"_id": 1})
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, translate("list users", err)
	}
	users, err := decodeAll[domain.User](ctx, cur)
	if err != nil {
		return nil, 0, translate("decode users", err)
	}
	return users, total, nil
}

// DeleteBuyer removes a user only if it is a Buyer
func (r *UserRepository) DeleteBuyer(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "type": domain.RoleBuyer})
	if err != nil {
		return translate("delete buyer", err)
	}
	if res.DeletedCount == 0 {
		return translate("delete buyer", mongo.ErrNoDocuments)
	}
	return nil
}

// VerifySeller marks an existing seller as verified. No document is created
// for an unknown id.
func (r *UserRepository) VerifySeller(ctx context.Context, id primitive.ObjectID) error {
	return r.set(ctx, "verify seller", bson.M{"_id": id, "type": domain.RoleSeller}, bson.M{"verify": true})
}

// PromoteAdmin changes an existing user's type to Admin
func (r *UserRepository) PromoteAdmin(ctx context.Context, id primitive.ObjectID) error {
	return r.set(ctx, "promote admin", bson.M{"_id": id}, bson.M{"type": domain.RoleAdmin})
}

func (r *UserRepository) set(ctx context.Context, op string, filter, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return translate(op, err)
	}
	if res.MatchedCount == 0 {
		return translate(op, mongo.ErrNoDocuments)
	}
	return nil
}
