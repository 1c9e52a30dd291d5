package main

import (
	"context"   // Context for startup and shutdown
	"errors"    // Error matching
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal handling
	"syscall"   // SIGTERM
	"time"      // Shutdown timeout

	"bike_market/internal/api"      // Route handlers
	"bike_market/internal/config"   // Configuration
	"bike_market/internal/db"       // MongoDB connection
	"bike_market/internal/gateway"  // Stripe gateway
	"bike_market/internal/payments" // Payment recording
	"bike_market/internal/store"    // Repositories
	"bike_market/internal/utils"    // Cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongo, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := db.Migrate(ctx, mongo.Database); err != nil {
		logrus.Fatalf("failed to ensure indexes: %v", err)
	}

	// Redis is optional; without it the catalog is read straight from Mongo
	var cache *utils.Cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		cache = utils.NewCache(redisClient, cfg.CacheTTL)
	} else {
		logrus.Warn("REDIS_ADDR not set, catalog cache disabled")
	}

	if cfg.StripeSecretKey == "" {
		logrus.Warn("STRIPE_SECRET_KEY not set, payment intents will fail")
	}

	paymentRepo := store.NewPaymentRepository(mongo.Database)
	var tx payments.Transactor
	if cfg.MongoTx {
		tx = store.NewTransactor(mongo.Client)
	}

	router := api.NewRouter(api.Deps{
		Users:      store.NewUserRepository(mongo.Database),
		Bikes:      store.NewBikeRepository(mongo.Database),
		Catalog:    store.NewCatalogRepository(mongo.Database),
		Bookings:   store.NewBookingRepository(mongo.Database),
		Reports:    store.NewReportRepository(mongo.Database),
		Advertises: store.NewAdvertiseRepository(mongo.Database),
		Payments:   payments.NewRecorder(paymentRepo, tx),
		Gateway:    gateway.NewStripe(cfg.StripeSecretKey, cfg.Currency, nil),
		Cache:      cache,
		JWTSecret:  cfg.JWTSecret,
		CORS:       cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.WithField("port", cfg.AppPort).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := mongo.Close(shutdownCtx); err != nil {
		logrus.Errorf("mongo disconnect: %v", err)
	}
	logrus.Info("Server exited properly")
}
