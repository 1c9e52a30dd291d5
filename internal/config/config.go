package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For cache TTL

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	MongoURI        string        // MongoDB connection string
	MongoDB         string        // MongoDB database name
	MongoTx         bool          // Use multi-document transactions for payments
	JWTSecret       string        // JWT secret key
	StripeSecretKey string        // Stripe secret key
	Currency        string        // Currency for payment intents
	RedisAddr       string        // Redis server address
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	CacheTTL        time.Duration // Catalog cache lifetime
	CORSOrigins     []string      // Allowed CORS origins, "*" when empty
	IsProd          bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	ttl, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "60"))
	if err != nil || ttl <= 0 { // zero would never expire
		ttl = 60
	}
	return &Config{
		AppPort:         getEnv("APP_PORT", getEnv("PORT", "5000")),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "bikeReader"),
		MongoTx:         getEnv("MONGO_TRANSACTIONS", "true") == "true",
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		Currency:        strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         redisDB,
		CacheTTL:        time.Duration(ttl) * time.Second,
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),
		IsProd:          os.Getenv("IS_PROD") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
