package api

import (
	"net/http" // HTTP status codes

	"bike_market/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListUsersHandler returns one page of users with the given account type
func ListUsersHandler(users UserStore, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c)
		list, total, err := users.ListByRole(c.Request.Context(), role, page, pageSize)
		if err != nil {
			respondError(c, err, "Failed to fetch users")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users":       list,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages(total, pageSize),
		})
	}
}

// DeleteBuyerHandler removes a buyer account
func DeleteBuyerHandler(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := users.DeleteBuyer(c.Request.Context(), id); err != nil {
			respondError(c, err, "Failed to delete buyer")
			return
		}
		c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
	}
}

// VerifySellerHandler marks an existing seller as verified
func VerifySellerHandler(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := users.VerifySeller(c.Request.Context(), id); err != nil {
			respondError(c, err, "Failed to verify seller")
			return
		}
		logrus.WithField("user_id", id.Hex()).Info("Seller verified")
		c.JSON(http.StatusOK, gin.H{"matchedCount": 1, "modifiedCount": 1})
	}
}

// MakeAdminHandler promotes an existing user to Admin
func MakeAdminHandler(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := users.PromoteAdmin(c.Request.Context(), id); err != nil {
			respondError(c, err, "Failed to promote user")
			return
		}
		logrus.WithField("user_id", id.Hex()).Info("User promoted to admin")
		c.JSON(http.StatusOK, gin.H{"matchedCount": 1, "modifiedCount": 1})
	}
}
