package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Cache TTL

	"car_rental/internal/domain"     // Importing domain models
	"car_rental/internal/middleware" // Request logger
	"car_rental/internal/store"      // Persistence
	"car_rental/internal/utils"      // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// VerifyDriverRequest carries the business identifier to verify
type VerifyDriverRequest struct {
	IDNumber any `json:"idNumber"` // Driver idNumber, string or number
}

const driverNotFound = "Driver not found"

// VerifyDriverHandler looks a driver up by idNumber so the caller can review them
func VerifyDriverHandler(drivers *store.DriverStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyDriverRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			return
		}
		idNumber := strings.TrimSpace(domain.ToText(req.IDNumber))
		if idNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing ID number"})
			return
		}
		driver, err := drivers.GetByIDNumber(c.Request.Context(), idNumber)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": driverNotFound})
				return
			}
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "driver": driver})
	}
}

// CreateReviewHandler stores a review of a verified driver and drops the
// cached review list
func CreateReviewHandler(reviews *store.ReviewStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.ReviewInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			return
		}
		review, err := reviews.Create(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": driverNotFound})
				return
			}
			respondFailure(c, err)
			return
		}
		if err := utils.DeleteCache(c.Request.Context(), rdb, utils.ReviewsCacheKey); err != nil {
			middleware.Logger(c).WithError(err).Warn("Failed to invalidate reviews cache")
		}
		middleware.Logger(c).WithFields(logrus.Fields{
			"review_id": review.ID,       // New review ID
			"driver_id": review.DriverID, // Reviewed driver
			"rating":    review.Rating,   // Rating given
		}).Info("Review created")
		c.JSON(http.StatusCreated, gin.H{"success": true, "review": review})
	}
}

// ListReviewsHandler returns every review, newest first, served from Redis when cached
func ListReviewsHandler(reviews *store.ReviewStore, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		list, cached, err := utils.Remember(ctx, rdb, utils.ReviewsCacheKey, ttl, func() ([]domain.DriverReview, error) {
			return reviews.List(ctx)
		})
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "reviews": list, "cached": cached})
	}
}
