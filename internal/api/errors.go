package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"car_rental/internal/domain"     // Error sentinels
	"car_rental/internal/middleware" // Request logger

	"github.com/gin-gonic/gin" // Gin web framework
)

// errorStatus maps an error onto an HTTP status and a caller-safe message.
// Storage failures are logged with their cause and reported generically.
func errorStatus(c *gin.Context, err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Admin access required"
	default:
		middleware.Logger(c).WithError(err).Error("Operation failed")
		return http.StatusInternalServerError, "Operation failed"
	}
}

// respondError writes {"error": message}
func respondError(c *gin.Context, err error) {
	status, msg := errorStatus(c, err)
	c.JSON(status, gin.H{"error": msg})
}

// respondFailure writes {"success": false, "error": message}
func respondFailure(c *gin.Context, err error) {
	status, msg := errorStatus(c, err)
	c.JSON(status, gin.H{"success": false, "error": msg})
}
