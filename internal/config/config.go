package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	JWTExpire   time.Duration
	FrontendURL string

	LogLevel  string
	LogFormat string

	// Recommendation engine
	RecommendationLimit int
	BatchWorkers        int

	// Background jobs
	SchedulerEnabled          bool
	GenerationInterval        time.Duration
	PreferenceRefreshInterval time.Duration

	// Requests per minute allowed on the on-demand generate endpoint
	GenerateRateLimit int
	// Requests per minute per client address across the API
	GlobalRateLimit int
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	appEnv := getEnv("APP_ENV", "development")
	defaultFormat := "console"
	if appEnv == "production" {
		defaultFormat = "json"
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      appEnv,
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "spire"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		JWTExpire:   time.Duration(getEnvInt("JWT_EXPIRE_HOURS", 24)) * time.Hour,
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", defaultFormat),

		RecommendationLimit: getEnvInt("RECOMMENDATION_LIMIT", 20),
		BatchWorkers:        getEnvInt("BATCH_WORKERS", 4),

		SchedulerEnabled:          getEnvBool("SCHEDULER_ENABLED", false),
		GenerationInterval:        getEnvDuration("GENERATION_INTERVAL", 24*time.Hour),
		PreferenceRefreshInterval: getEnvDuration("PREFERENCE_REFRESH_INTERVAL", 6*time.Hour),

		GenerateRateLimit: getEnvInt("RATE_LIMIT_GENERATE", 5),
		GlobalRateLimit:   getEnvInt("RATE_LIMIT_GLOBAL", 300),
	}
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		log.Printf("Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
