package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"bike_market/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// EmailKey is the gin context key holding the authenticated email
const EmailKey = "email"

// JWTAuthMiddleware validates JWT tokens and extracts the caller's email
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(EmailKey, claims.Email) // Store email in context
		c.Next()
	}
}

// CallerEmail returns the email set by JWTAuthMiddleware, or "" on public routes
func CallerEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}
