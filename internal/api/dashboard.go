package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parsing
	"time"     // Clock

	"car_rental/internal/ledger" // Aggregation engine
	"car_rental/internal/store"  // Persistence

	"github.com/gin-gonic/gin" // Gin web framework
)

// DashboardHandler summarises every rented car per driver and per month.
// It is recomputed on each request.
func DashboardHandler(cars *store.CarStore, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		rented, err := cars.ListByRented(c.Request.Context(), true)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ledger.Summarize(rented, now()))
	}
}

// LedgerMonthsHandler lists the months that have rented cars, newest first
func LedgerMonthsHandler(cars *store.CarStore, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		rented, err := cars.ListByRented(c.Request.Context(), true)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"months": ledger.Months(rented, now().Location())})
	}
}

// WeekLedgerHandler returns the rented cars of one week of a month with their
// expense, profit and loss totals. month defaults to the newest month with
// data and week to 1.
func WeekLedgerHandler(cars *store.CarStore, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		week := 1 // Default week
		if w := c.Query("week"); w != "" {
			v, err := strconv.Atoi(w)
			if err != nil || v < 1 || v > 4 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "week must be between 1 and 4"})
				return
			}
			week = v
		}
		month := c.Query("month")
		if month != "" {
			if _, err := time.Parse(ledger.MonthLayout, month); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
				return
			}
		}
		rented, err := cars.ListByRented(c.Request.Context(), true)
		if err != nil {
			respondError(c, err)
			return
		}
		loc := now().Location()
		if month == "" {
			month = now().Format(ledger.MonthLayout) // No data yet: current month
			if months := ledger.Months(rented, loc); len(months) > 0 {
				month = months[0]
			}
		}
		c.JSON(http.StatusOK, ledger.Week(rented, month, week, c.Query("search"), loc))
	}
}
