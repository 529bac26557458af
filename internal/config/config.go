package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables,
// with an optional .env file for local development.
type Config struct {
	Port           string
	Env            string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	TokenTTL       time.Duration
	RedisAddr      string
	RedisPassword  string
	AuthRateLimit  int
	AllowedOrigins []string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getenv("PORT", "5000"),
		Env:           getenv("APP_ENV", "development"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "taskboard"),
		JWTSecret:     getenv("JWT_SECRET", "supersecretkey"),
		TokenTTL:      getduration("TOKEN_TTL", time.Hour),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		AuthRateLimit: getint("AUTH_RATE_LIMIT", 30),
		AllowedOrigins: strings.Split(
			getenv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
	}
}

// Dev reports whether diagnostic detail may be attached to error responses.
func (c *Config) Dev() bool {
	return c.Env == "development"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
