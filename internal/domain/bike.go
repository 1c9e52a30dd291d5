package domain

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bike is a listing posted by a seller. The fields the server relies on are
// typed; every other submitted field (name, image, location, condition,
// phone, ...) is kept verbatim in Details and stored inline in the document.
type Bike struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Category      string             `bson:"category" json:"category"`
	Email         string             `bson:"email" json:"email"` // Seller email
	Price         *float64           `bson:"price,omitempty" json:"price,omitempty"`
	ResalePrice   *float64           `bson:"resalePrice,omitempty" json:"resalePrice,omitempty"`
	OriginalPrice *float64           `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	PostedAt      time.Time          `bson:"postedAt" json:"postedAt"`
	Sold          bool               `bson:"sold" json:"sold"`
	Details       bson.M             `bson:",inline" json:"-"`
}

// bikeFields are the JSON keys owned by the typed fields of Bike
var bikeFields = []string{"_id", "category", "email", "price", "resalePrice", "originalPrice", "postedAt", "sold"}

type bikeJSON Bike

// UnmarshalJSON decodes the typed fields and keeps the rest in Details
func (b *Bike) UnmarshalJSON(data []byte) error {
	var typed bikeJSON
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	var rest bson.M
	if err := json.Unmarshal(data, &rest); err != nil {
		return err
	}
	for _, k := range bikeFields {
		delete(rest, k)
	}
	if len(rest) == 0 {
		rest = nil
	}
	typed.Details = rest
	*b = Bike(typed)
	return nil
}

// MarshalJSON writes Details next to the typed fields
func (b Bike) MarshalJSON() ([]byte, error) {
	typed, err := json.Marshal(bikeJSON(b))
	if err != nil || len(b.Details) == 0 {
		return typed, err
	}
	out := make(map[string]any, len(b.Details)+len(bikeFields))
	for k, v := range b.Details {
		out[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(typed, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// Category is static reference data
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id" yaml:"-"`
	Name string             `bson:"name" json:"name" yaml:"name"`
}

// Advertise is a promotional listing with its own lifecycle
type Advertise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BikeID      string             `bson:"bikeId,omitempty" json:"bikeId,omitempty"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	ResalePrice float64            `bson:"resalePrice,omitempty" json:"resalePrice,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Blog is read-only content
type Blog struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id" yaml:"-"`
	Title string             `bson:"title" json:"title" yaml:"title"`
	Body  string             `bson:"body" json:"body" yaml:"body"`
}
