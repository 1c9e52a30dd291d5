package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a buyer's attempt to purchase a bike
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"` // Buyer email
	BikeID        primitive.ObjectID `bson:"bikeId" json:"bikeId"`
	BikeName      string             `bson:"bikeName,omitempty" json:"bikeName,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// Payment is an append-only log row, one per paid booking
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookingID     primitive.ObjectID `bson:"bookingId" json:"bookingId" binding:"required"`
	BikeID        primitive.ObjectID `bson:"bikeId" json:"bikeId" binding:"required"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	TransactionID string             `bson:"transactionId" json:"transactionId" binding:"required"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// Report flags a bike for admin review
type Report struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BikeID    primitive.ObjectID `bson:"bikeId" json:"bikeId" binding:"required"`
	BikeName  string             `bson:"bikeName,omitempty" json:"bikeName,omitempty"`
	Email     string             `bson:"email" json:"email"` // Reporter email
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
