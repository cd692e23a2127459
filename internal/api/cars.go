package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"car_rental/internal/domain"     // Importing domain models
	"car_rental/internal/middleware" // Request logger
	"car_rental/internal/store"      // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// pathID parses the :id path parameter as a primary key
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// bindCarForm decodes the loosely typed editor form
func bindCarForm(c *gin.Context) (domain.CarForm, bool) {
	var form domain.CarForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return nil, false
	}
	return form, true
}

// ListCarsHandler returns every car, newest first
func ListCarsHandler(cars *store.CarStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := cars.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ListAvailableCarsHandler returns the cars not out on rent, newest first
func ListAvailableCarsHandler(cars *store.CarStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := cars.ListByRented(c.Request.Context(), false)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateCarHandler adds a car from the editor form
func CreateCarHandler(cars *store.CarStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, ok := bindCarForm(c)
		if !ok {
			return
		}
		car, err := cars.Create(c.Request.Context(), form)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.Logger(c).WithFields(logrus.Fields{
			"car_id":     car.ID,        // New car ID
			"car_number": car.CarNumber, // Fleet tag
			"rented":     car.Rented,    // Rental status
		}).Info("Car created")
		c.JSON(http.StatusCreated, car)
	}
}

// GetCarHandler returns one car
func GetCarHandler(cars *store.CarStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		car, err := cars.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, car)
	}
}

// UpdateCarHandler writes the provided form fields onto a car
func UpdateCarHandler(cars *store.CarStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		form, ok := bindCarForm(c)
		if !ok {
			return
		}
		car, err := cars.Update(c.Request.Context(), id, form)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.Logger(c).WithFields(logrus.Fields{
			"car_id":    car.ID,       // Updated car ID
			"rented":    car.Rented,   // Rental status
			"driver_id": car.DriverID, // Assigned driver
		}).Info("Car updated")
		c.JSON(http.StatusOK, car)
	}
}

// DeleteCarHandler removes a car
func DeleteCarHandler(cars *store.CarStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := cars.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		middleware.Logger(c).WithField("car_id", id).Info("Car deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
	}
}

// ListDriverCarsHandler returns a driver's rental history. The path segment
// is the driver's idNumber, which is what cars reference.
func ListDriverCarsHandler(cars *store.CarStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := cars.ListByDriver(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
