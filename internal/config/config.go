package config

import (
	"os"      // For environment variables
	"strings" // For splitting list values
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
	"github.com/spf13/cast"    // For typed conversion of env values
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	JWTSecret       string        // JWT secret key
	RedisAddr       string        // Redis server address
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	IsProd          bool          // Is production environment
	LogLevel        string        // Logrus level name
	AdminEmail      string        // Email of the single admin identity
	SessionCookie   string        // Name of the session cookie
	SessionTTL      time.Duration // Lifetime of a login session
	CookieDomain    string        // Domain attribute of the session cookie
	CORSOrigins     []string      // Allowed browser origins
	ReviewsCacheTTL time.Duration // TTL of the cached public reviews list
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:         cast.ToString(getOrDefault("APP_PORT", "8080")),                                 // Application port
		DBUser:          os.Getenv("DB_USER"),                                                            // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),                                                        // Database password
		DBHost:          cast.ToString(getOrDefault("DB_HOST", "127.0.0.1")),                             // Database host
		DBPort:          cast.ToString(getOrDefault("DB_PORT", "3306")),                                  // Database port
		DBName:          os.Getenv("DB_NAME"),                                                            // Database name
		JWTSecret:       os.Getenv("JWT_SECRET"),                                                         // JWT secret key
		RedisAddr:       cast.ToString(getOrDefault("REDIS_ADDR", "127.0.0.1:6379")),                     // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),                                                         // Redis password
		RedisDB:         cast.ToInt(getOrDefault("REDIS_DB", 0)),                                         // Redis database number
		IsProd:          cast.ToBool(getOrDefault("IS_PROD", false)),                                     // Is production environment
		LogLevel:        cast.ToString(getOrDefault("LOG_LEVEL", "info")),                                // Log level
		AdminEmail:      strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),                                     // Admin identity email
		SessionCookie:   cast.ToString(getOrDefault("SESSION_COOKIE", "session_token")),                  // Session cookie name
		SessionTTL:      cast.ToDuration(getOrDefault("SESSION_TTL", "168h")),                            // Session lifetime
		CookieDomain:    os.Getenv("COOKIE_DOMAIN"),                                                      // Cookie domain
		CORSOrigins:     splitList(cast.ToString(getOrDefault("CORS_ORIGINS", "http://localhost:3000"))), // Allowed origins
		ReviewsCacheTTL: cast.ToDuration(getOrDefault("REVIEWS_CACHE_TTL", "60s")),                       // Reviews cache TTL
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getOrDefault returns the env value for key, or defaultValue when unset
func getOrDefault(key string, defaultValue any) any {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
