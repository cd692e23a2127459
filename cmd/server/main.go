package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Clock for the dashboard

	"car_rental/internal/api"    // Custom package for API handlers
	"car_rental/internal/config" // Custom package for configuration
	"car_rental/internal/db"     // Custom package for database setup
	"car_rental/internal/store"  // Custom package for persistence
	"car_rental/internal/utils"  // Custom package for sessions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}
	if cfg.AdminEmail == "" {
		logrus.Warn("ADMIN_EMAIL is not set, no account will have admin access")
	}

	// Connect to the database
	database, err := db.Open(cfg.DSN(), cfg.IsProd)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	stores := store.New(database)

	// The admin role lives on the identity record; sync it with the configured email
	promoted, demoted, err := stores.Users.SyncAdmin(context.Background(), cfg.AdminEmail)
	if err != nil {
		logrus.Fatalf("failed to resolve admin role: %v", err)
	}
	if promoted > 0 || demoted > 0 {
		logrus.WithFields(logrus.Fields{"email": cfg.AdminEmail, "promoted": promoted, "demoted": demoted}).Info("Admin role synced")
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err = redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Drop admin sessions left over from a previous ADMIN_EMAIL
	sessions := utils.NewSessionStore(redisClient, cfg.SessionTTL)
	revoked, err := sessions.RevokeStaleAdmins(context.Background(), cfg.AdminEmail)
	if err != nil {
		logrus.Fatalf("failed to revoke stale admin sessions: %v", err)
	}
	if revoked > 0 {
		logrus.WithField("sessions", revoked).Info("Stale admin sessions revoked")
	}

	r := api.NewRouter(api.Deps{
		Store:           stores,
		Sessions:        sessions,
		Redis:           redisClient,
		JWTSecret:       cfg.JWTSecret,
		AdminEmail:      cfg.AdminEmail,
		Cookie:          api.SessionCookie{Name: cfg.SessionCookie, Domain: cfg.CookieDomain, Secure: cfg.IsProd},
		CORSOrigins:     cfg.CORSOrigins,
		ReviewsCacheTTL: cfg.ReviewsCacheTTL,
		Now:             time.Now,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.Info("Server running on " + cfg.AppPort)  // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
