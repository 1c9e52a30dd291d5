package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"bike_market/internal/domain" // Importing domain models
	"bike_market/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the body of a registration
type RegisterRequest struct {
	Email string      `json:"email" binding:"required,email"` // Email must be provided
	Name  string      `json:"name"`                           // Display name
	Type  domain.Role `json:"type"`                           // Buyer or Seller, Buyer when empty
}

// AuthResponse carries an issued token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// RegisterHandler stores a user unless the email is already registered
func RegisterHandler(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Type == "" {
			req.Type = domain.RoleBuyer
		}
		// Admins are only made through /makeAdmin
		if !req.Type.Valid() || req.Type == domain.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be Buyer or Seller"})
			return
		}
		user := domain.User{Email: strings.TrimSpace(req.Email), Name: req.Name, Type: req.Type}
		result, id, err := users.Register(c.Request.Context(), &user)
		if err != nil {
			respondError(c, err, "Failed to register user")
			return
		}
		if result == domain.RegisterExisted {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{"email": user.Email, "type": user.Type}).Info("User registered")
		created(c, id)
	}
}

// UserRoleHandler returns the account type for an email, null when unknown
func UserRoleHandler(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.FindByEmail(c.Request.Context(), c.Param("email"))
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"role": nil})
			return
		}
		if err != nil {
			respondError(c, err, "Failed to fetch user")
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": user.Type})
	}
}

// IssueTokenHandler issues a 7-day token for a registered email
func IssueTokenHandler(users UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		user, err := users.FindByEmail(c.Request.Context(), email)
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, AuthResponse{Token: ""})
			return
		}
		if err != nil {
			respondError(c, err, "Failed to fetch user")
			return
		}
		token, err := utils.GenerateJWT(user.Email, jwtSecret) // Generate JWT token
		if err != nil {
			respondError(c, err, "Failed to generate token")
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
