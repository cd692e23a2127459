// Package ledger derives rent summaries from car records: the per-driver
// dashboard, the received-amount series for the current year, and the weekly
// expense/profit/loss table. Everything is recomputed from the rows passed
// in; nothing is cached between calls.
package ledger

import (
	"strings" // Month name normalization
	"time"    // Calendar months and rental dates

	"car_rental/internal/domain" // Car model
)

// UnknownDriver names a group whose cars carry no driver name
const UnknownDriver = "Unknown Driver"

// DriverSummary totals the rented cars of one driver
type DriverSummary struct {
	DriverID      string       `json:"driverId"`
	DriverName    string       `json:"driverName"`
	Cars          []domain.Car `json:"cars"`
	TotalRent     float64      `json:"totalRent"`
	TotalReceived float64      `json:"totalReceived"`
	TotalPending  float64      `json:"totalPending"` // Not clamped; negative when over-received
}

// MonthAmount is one bucket of the received-amount series
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Dashboard is the admin overview of rented cars
type Dashboard struct {
	Drivers       []DriverSummary `json:"drivers"`
	TotalReceived float64         `json:"totalReceived"`
	TotalPending  float64         `json:"totalPending"`
	Pending       []DriverSummary `json:"pending"`
	Monthly       []MonthAmount   `json:"monthly"`
	Year          int             `json:"year"`
}

// Summarize builds the dashboard from every car; only rented cars count
func Summarize(cars []domain.Car, now time.Time) Dashboard {
	rented := Rented(cars)
	drivers := GroupByDriver(rented)
	d := Dashboard{
		Drivers: drivers,
		Pending: PendingDrivers(drivers),
		Monthly: MonthlyReceived(rented, now),
		Year:    now.Year(),
	}
	for _, s := range drivers {
		d.TotalReceived += s.TotalReceived
		d.TotalPending += s.TotalPending
	}
	return d
}

// Rented keeps the cars whose rented flag is set, preserving order
func Rented(cars []domain.Car) []domain.Car {
	out := make([]domain.Car, 0, len(cars))
	for _, car := range cars {
		if car.Rented {
			out = append(out, car)
		}
	}
	return out
}

// GroupByDriver groups cars by driverId in first-seen order. Cars without a
// driverId share one group.
func GroupByDriver(cars []domain.Car) []DriverSummary {
	index := make(map[string]int)
	out := []DriverSummary{}
	for _, car := range cars {
		i, ok := index[car.DriverID]
		if !ok {
			name := strings.TrimSpace(car.DriverName)
			if name == "" {
				name = UnknownDriver
			}
			i = len(out)
			index[car.DriverID] = i
			out = append(out, DriverSummary{DriverID: car.DriverID, DriverName: name})
		}
		s := &out[i]
		s.Cars = append(s.Cars, car)
		s.TotalRent += domain.Value(car.RentPerWeek)
		s.TotalReceived += domain.Value(car.AmountReceiver)
	}
	for i := range out {
		out[i].TotalPending = out[i].TotalRent - out[i].TotalReceived
	}
	return out
}

// PendingDrivers is the pending-detail view: groups that still owe rent
func PendingDrivers(summaries []DriverSummary) []DriverSummary {
	out := []DriverSummary{}
	for _, s := range summaries {
		if s.TotalPending > 0 {
			out = append(out, s)
		}
	}
	return out
}

// MonthlyReceived sums amountReceiver per calendar month of now's year.
// Cars with a zero or absent amount are skipped before any date is looked at.
func MonthlyReceived(cars []domain.Car, now time.Time) []MonthAmount {
	var totals [12]float64
	for _, car := range cars {
		received := domain.Value(car.AmountReceiver)
		if received == 0 {
			continue
		}
		date := EffectiveDate(car, now)
		if date.Year() != now.Year() {
			continue
		}
		totals[date.Month()-1] += received
	}
	series := make([]MonthAmount, len(totals))
	for i, amount := range totals {
		series[i] = MonthAmount{Month: time.Month(i + 1).String()[:3], Amount: amount}
	}
	return series
}

// EffectiveDate is the rentedDate when it parses, else createdAt, else now
func EffectiveDate(car domain.Car, now time.Time) time.Time {
	if t, ok := ParseDate(car.RentedDate, now.Location()); ok {
		return t
	}
	if !car.CreatedAt.IsZero() {
		return car.CreatedAt.In(now.Location())
	}
	return now
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseDate reads a free-text date in one of the common form layouts.
// Dates without a zone are taken in loc; the result is expressed in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}
