package middleware

import (
	"context"  // Context for the user lookup
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"bike_market/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RoleLookup finds the account behind a token
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthResult is the outcome of a role check
type AuthResult int

const (
	Authorized      AuthResult = iota
	Unauthenticated            // no email on the request
	Forbidden                  // the user exists with another role
	UserNotFound               // the token names no stored user
	LookupFailed               // the store could not be queried
)

func (r AuthResult) String() string {
	switch r {
	case Authorized:
		return "authorized"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case UserNotFound:
		return "user_not_found"
	case LookupFailed:
		return "lookup_failed"
	}
	return "unknown"
}

// Authorize checks that email belongs to a user of the given role
func Authorize(ctx context.Context, users RoleLookup, email string, role domain.Role) (AuthResult, error) {
	if email == "" {
		return Unauthenticated, nil
	}
	user, err := users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return UserNotFound, nil
	}
	if err != nil {
		return LookupFailed, err
	}
	if user.Type != role {
		return Forbidden, nil
	}
	return Authorized, nil
}

// RequireRole admits only callers whose stored account type is role.
// It must run after JWTAuthMiddleware.
func RequireRole(users RoleLookup, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CallerEmail(c)
		result, err := Authorize(c.Request.Context(), users, email, role)
		switch result {
		case Authorized:
			c.Next()
		case Unauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		case UserNotFound:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User not found"})
		case Forbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": string(role) + " access required"})
		default:
			logrus.WithFields(logrus.Fields{
				"email": email,
				"role":  role,
				"error": err,
			}).Error("Role lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		}
	}
}
