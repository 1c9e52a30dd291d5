package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"bike_market/internal/domain"   // Importing domain models
	"bike_market/internal/gateway"  // Amount conversion
	"bike_market/internal/payments" // Partial failure reporting
	"bike_market/internal/utils"    // Utility functions

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact prices
	"github.com/sirupsen/logrus"    // Logging library
)

// IntentRequest accepts the price as a JSON string or number
type IntentRequest struct {
	Price decimal.Decimal `json:"price"`
}

// IntentResponse is what the client needs to confirm the payment
type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// CreatePaymentIntentHandler converts the price to minor units and opens a
// payment intent at the gateway
func CreatePaymentIntentHandler(gw IntentCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		amount, err := gateway.ToMinorUnits(req.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive with at most two decimal places"})
			return
		}
		intent, err := gw.CreateIntent(c.Request.Context(), amount, c.GetHeader("Idempotency-Key"))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"amount":     amount,
				"request_id": c.GetString("requestID"),
				"error":      err.Error(),
			}).Error("Payment intent failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway error"})
			return
		}
		c.JSON(http.StatusOK, IntentResponse{
			ClientSecret: intent.ClientSecret,
			Amount:       intent.Amount,
			Currency:     intent.Currency,
		})
	}
}

// RecordPaymentHandler stores a completed payment, marks the booking paid
// and the bike sold
func RecordPaymentHandler(recorder PaymentRecorder, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payment domain.Payment
		if err := c.ShouldBindJSON(&payment); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := recorder.Record(c.Request.Context(), &payment)
		var partial *payments.PartialFailureError
		if errors.As(err, &partial) {
			logrus.WithFields(logrus.Fields{
				"booking_id": payment.BookingID.Hex(),
				"completed":  partial.Completed,
				"error":      err.Error(),
			}).Error("Payment partially recorded")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Payment partially recorded",
				"partial":   true,
				"completed": partial.Completed,
			})
			return
		}
		if err != nil {
			respondError(c, err, "Failed to record payment")
			return
		}
		invalidateBikes(c.Request.Context(), cache)
		logrus.WithFields(logrus.Fields{
			"payment_id":     id.Hex(),
			"booking_id":     payment.BookingID.Hex(),
			"bike_id":        payment.BikeID.Hex(),
			"transaction_id": payment.TransactionID,
		}).Info("Payment recorded")
		created(c, id)
	}
}
