package api

import (
	"net/http" // HTTP status codes

	"bike_market/internal/domain"     // Importing domain models
	"bike_market/internal/middleware" // Caller identity

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListAdvertisesHandler returns every advertisement
func ListAdvertisesHandler(ads AdvertiseStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := ads.List(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch advertises")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateAdvertiseHandler promotes a listing for the calling seller
func CreateAdvertiseHandler(ads AdvertiseStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ad domain.Advertise
		if err := c.ShouldBindJSON(&ad); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ad.Email = middleware.CallerEmail(c)
		id, err := ads.Create(c.Request.Context(), &ad)
		if err != nil {
			respondError(c, err, "Failed to create advertise")
			return
		}
		created(c, id)
	}
}

// DeleteAdvertiseHandler removes an advertisement owned by the caller
func DeleteAdvertiseHandler(ads AdvertiseStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := ads.DeleteOwned(c.Request.Context(), id, middleware.CallerEmail(c)); err != nil {
			respondError(c, err, "Failed to delete advertise")
			return
		}
		c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
	}
}
