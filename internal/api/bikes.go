package api

import (
	"net/http" // HTTP status codes

	"bike_market/internal/domain"     // Importing domain models
	"bike_market/internal/middleware" // Caller identity
	"bike_market/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// GetBikeHandler returns one bike by id
func GetBikeHandler(bikes BikeStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		bike, err := bikes.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Failed to fetch bike")
			return
		}
		c.JSON(http.StatusOK, bike)
	}
}

// CreateBikeHandler lists a new bike for the calling seller
func CreateBikeHandler(bikes BikeStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bike domain.Bike
		if err := c.ShouldBindJSON(&bike); err != nil || bike.Category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		bike.Email = middleware.CallerEmail(c) // Listings always belong to the caller
		id, err := bikes.Create(c.Request.Context(), &bike)
		if err != nil {
			respondError(c, err, "Failed to create bike")
			return
		}
		invalidateBikes(c.Request.Context(), cache)
		logrus.WithFields(logrus.Fields{
			"bike_id":  id.Hex(),
			"category": bike.Category,
			"seller":   bike.Email,
		}).Info("Bike listed")
		created(c, id)
	}
}

// MyBikesHandler returns the caller's own listings
func MyBikesHandler(bikes BikeStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := bikes.ListBySeller(c.Request.Context(), middleware.CallerEmail(c))
		if err != nil {
			respondError(c, err, "Failed to fetch bikes")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// DeleteBikeHandler removes a bike owned by the caller
func DeleteBikeHandler(bikes BikeStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if _, err := bikes.DeleteOwned(c.Request.Context(), id, middleware.CallerEmail(c)); err != nil {
			respondError(c, err, "Failed to delete bike")
			return
		}
		invalidateBikes(c.Request.Context(), cache)
		c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
	}
}
