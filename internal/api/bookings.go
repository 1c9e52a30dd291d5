package api

import (
	"net/http" // HTTP status codes

	"bike_market/internal/domain"     // Importing domain models
	"bike_market/internal/middleware" // Caller identity

	"github.com/gin-gonic/gin"                   // Gin web framework
	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB ObjectID
)

// CreateBookingHandler records a buyer's booking of a bike, unpaid
func CreateBookingHandler(bookings BookingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var booking domain.Booking
		if err := c.ShouldBindJSON(&booking); err != nil || booking.BikeID.IsZero() || booking.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := bookings.Create(c.Request.Context(), &booking)
		if err != nil {
			respondError(c, err, "Failed to create booking")
			return
		}
		created(c, id)
	}
}

// MyBookingsHandler returns the caller's bookings
func MyBookingsHandler(bookings BookingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := bookings.ListByEmail(c.Request.Context(), middleware.CallerEmail(c))
		if err != nil {
			respondError(c, err, "Failed to fetch bookings")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetBookingHandler returns one booking to its buyer or to an admin
func GetBookingHandler(bookings BookingStore, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		booking, ok := visibleBooking(c, bookings, users, id)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// DeleteBookingHandler cancels a booking owned by the caller. Admins may
// cancel any booking.
func DeleteBookingHandler(bookings BookingStore, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if _, ok := visibleBooking(c, bookings, users, id); !ok {
			return
		}
		if err := bookings.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, "Failed to delete booking")
			return
		}
		c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
	}
}

// visibleBooking loads a booking the caller may see. Someone else's booking
// is reported as missing.
func visibleBooking(c *gin.Context, bookings BookingStore, users UserStore, id primitive.ObjectID) (*domain.Booking, bool) {
	booking, err := bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch booking")
		return nil, false
	}
	caller := middleware.CallerEmail(c)
	if booking.Email == caller {
		return booking, true
	}
	result, err := middleware.Authorize(c.Request.Context(), users, caller, domain.RoleAdmin)
	if err != nil {
		respondError(c, err, "Failed to check caller role")
		return nil, false
	}
	if result != middleware.Authorized {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return nil, false
	}
	return booking, true
}
