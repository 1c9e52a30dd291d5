package api

import (
	"net/http" // HTTP status codes

	"bike_market/internal/domain"     // Importing domain models
	"bike_market/internal/middleware" // Auth and request middleware
	"bike_market/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators the routes are wired to
type Deps struct {
	Users      UserStore
	Bikes      BikeStore
	Catalog    CatalogStore
	Bookings   BookingStore
	Reports    ReportStore
	Advertises AdvertiseStore
	Payments   PaymentRecorder
	Gateway    IntentCreator
	Cache      *utils.Cache // nil disables caching
	JWTSecret  string
	CORS       []string
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(d.CORS))

	token := middleware.JWTAuthMiddleware(d.JWTSecret)
	buyer := middleware.RequireRole(d.Users, domain.RoleBuyer)
	seller := middleware.RequireRole(d.Users, domain.RoleSeller)
	admin := middleware.RequireRole(d.Users, domain.RoleAdmin)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bike reader server is running")
	})

	// Catalog
	r.GET("/categories", ListCategoriesHandler(d.Catalog, d.Cache))
	r.GET("/category-names", ListCategoryNamesHandler(d.Catalog, d.Cache))
	r.GET("/categories/:name", token, CategoryBikesHandler(d.Bikes, d.Cache))
	r.GET("/blogs", ListBlogsHandler(d.Catalog))

	// Listings
	r.GET("/bikes/:id", GetBikeHandler(d.Bikes))
	r.POST("/bikes", token, seller, CreateBikeHandler(d.Bikes, d.Cache))
	r.GET("/my-bikes", token, seller, MyBikesHandler(d.Bikes))
	r.DELETE("/bikes/:id", token, seller, DeleteBikeHandler(d.Bikes, d.Cache))
	r.GET("/advertises", ListAdvertisesHandler(d.Advertises))
	r.POST("/advertises", token, seller, CreateAdvertiseHandler(d.Advertises))
	r.DELETE("/advertises/:id", token, seller, DeleteAdvertiseHandler(d.Advertises))

	// Users
	r.GET("/jwt", IssueTokenHandler(d.Users, d.JWTSecret))
	r.POST("/users", RegisterHandler(d.Users))
	r.GET("/users/role/:email", UserRoleHandler(d.Users))

	// Admin routes
	r.GET("/sellers", token, admin, ListUsersHandler(d.Users, domain.RoleSeller))
	r.GET("/buyers", token, admin, ListUsersHandler(d.Users, domain.RoleBuyer))
	r.DELETE("/buyers/:id", token, admin, DeleteBuyerHandler(d.Users))
	r.PUT("/sellers/verify/:id", token, admin, VerifySellerHandler(d.Users))
	r.PUT("/makeAdmin/:id", token, admin, MakeAdminHandler(d.Users))
	r.GET("/reports", token, admin, ListReportsHandler(d.Reports))
	r.DELETE("/reports/:id", token, admin, DeleteReportHandler(d.Reports, d.Bikes, d.Cache))
	r.POST("/reports", token, CreateReportHandler(d.Reports))

	// Bookings and payments
	r.POST("/bookings", CreateBookingHandler(d.Bookings))
	r.GET("/bookings", token, buyer, MyBookingsHandler(d.Bookings))
	r.GET("/bookings/:id", token, GetBookingHandler(d.Bookings, d.Users))
	r.DELETE("/bookings/:id", token, DeleteBookingHandler(d.Bookings, d.Users))
	r.POST("/create-payment-intent", CreatePaymentIntentHandler(d.Gateway))
	r.POST("/payment", RecordPaymentHandler(d.Payments, d.Cache))

	return r
}
