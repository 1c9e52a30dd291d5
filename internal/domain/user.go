package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the account type stored in the user's "type" field
type Role string

// Account types
const (
	RoleBuyer  Role = "Buyer"
	RoleSeller Role = "Seller"
	RoleAdmin  Role = "Admin"
)

// Valid reports whether r is one of the known account types
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// User Model
type User struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"` // Primary key
	Email  string             `bson:"email" json:"email"`       // Unique email
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Type   Role               `bson:"type" json:"type"`     // Buyer, Seller or Admin
	Verify bool               `bson:"verify" json:"verify"` // Seller verified by an admin
}

// RegisterResult is the outcome of an idempotent registration
type RegisterResult int

const (
	RegisterCreated RegisterResult = iota // A new user document was inserted
	RegisterExisted                       // A user with this email already existed
)
