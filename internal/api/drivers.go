package api

import (
	"net/http" // HTTP status codes

	"car_rental/internal/domain"     // Importing domain models
	"car_rental/internal/middleware" // Request logger
	"car_rental/internal/store"      // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

func bindDriverInput(c *gin.Context) (domain.DriverInput, bool) {
	var in domain.DriverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return in, false
	}
	return in, true
}

// ListDriversHandler returns every driver, highest id first
func ListDriversHandler(drivers *store.DriverStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := drivers.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateDriverHandler registers a driver
func CreateDriverHandler(drivers *store.DriverStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindDriverInput(c)
		if !ok {
			return
		}
		driver, err := drivers.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.Logger(c).WithFields(logrus.Fields{
			"driver_id": driver.ID,       // New driver ID
			"id_number": driver.IDNumber, // Business identifier
		}).Info("Driver created")
		c.JSON(http.StatusCreated, driver)
	}
}

// GetDriverHandler returns one driver
func GetDriverHandler(drivers *store.DriverStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		driver, err := drivers.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, driver)
	}
}

// UpdateDriverHandler writes the provided fields onto a driver
func UpdateDriverHandler(drivers *store.DriverStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		in, ok := bindDriverInput(c)
		if !ok {
			return
		}
		driver, err := drivers.Update(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.Logger(c).WithField("driver_id", driver.ID).Info("Driver updated")
		c.JSON(http.StatusOK, driver)
	}
}

// DeleteDriverHandler removes a driver that no car references
func DeleteDriverHandler(drivers *store.DriverStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := drivers.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		middleware.Logger(c).WithField("driver_id", id).Info("Driver deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
	}
}
