package api

import (
	"context"  // Context for store calls
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"bike_market/internal/domain"  // Importing domain models
	"bike_market/internal/gateway" // Payment gateway types

	"github.com/gin-gonic/gin"                   // Gin web framework
	"github.com/sirupsen/logrus"                 // Logging library
	"go.mongodb.org/mongo-driver/bson/primitive" // Object ids
)

// UserStore is the user persistence the handlers need
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Register(ctx context.Context, user *domain.User) (domain.RegisterResult, primitive.ObjectID, error)
	ListByRole(ctx context.Context, role domain.Role, page, pageSize int) ([]domain.User, int64, error)
	DeleteBuyer(ctx context.Context, id primitive.ObjectID) error
	VerifySeller(ctx context.Context, id primitive.ObjectID) error
	PromoteAdmin(ctx context.Context, id primitive.ObjectID) error
}

// BikeStore is the listing persistence the handlers need
type BikeStore interface {
	ListByCategory(ctx context.Context, category string) ([]domain.Bike, error)
	ListBySeller(ctx context.Context, email string) ([]domain.Bike, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Bike, error)
	Create(ctx context.Context, bike *domain.Bike) (primitive.ObjectID, error)
	DeleteOwned(ctx context.Context, id primitive.ObjectID, email string) (*domain.Bike, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// CatalogStore serves the static reference data
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCategoryNames(ctx context.Context) ([]string, error)
	ListBlogs(ctx context.Context) ([]domain.Blog, error)
}

// BookingStore is the booking persistence the handlers need
type BookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (primitive.ObjectID, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ReportStore is the report persistence the handlers need
type ReportStore interface {
	List(ctx context.Context, page, pageSize int) ([]domain.Report, int64, error)
	Create(ctx context.Context, report *domain.Report) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Report, error)
}

// AdvertiseStore is the advertisement persistence the handlers need
type AdvertiseStore interface {
	List(ctx context.Context) ([]domain.Advertise, error)
	Create(ctx context.Context, ad *domain.Advertise) (primitive.ObjectID, error)
	DeleteOwned(ctx context.Context, id primitive.ObjectID, email string) error
}

// PaymentRecorder stores a payment together with its booking and bike updates
type PaymentRecorder interface {
	Record(ctx context.Context, p *domain.Payment) (primitive.ObjectID, error)
}

// IntentCreator creates payment intents at the gateway
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, idempotencyKey string) (*gateway.Intent, error)
}

// InsertResult is the body returned for every created document
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

func created(c *gin.Context, id primitive.ObjectID) {
	c.JSON(http.StatusCreated, InsertResult{Acknowledged: true, InsertedID: id.Hex()})
}

// pathID parses the :id path parameter, answering 400 when it is malformed
func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps a store error onto its HTTP status and logs server faults
func respondError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict"})
	case errors.Is(err, domain.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
	case errors.Is(err, domain.ErrMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking is for a different bike"})
	default:
		logrus.WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("requestID"),
			"error":      err.Error(),
		}).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// pagination reads page and page_size, falling back to 1 and 20; page_size is capped at 100
func pagination(c *gin.Context) (page, pageSize int) {
	page = 1      // Default page number
	pageSize = 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	return (int(total) + pageSize - 1) / pageSize
}
