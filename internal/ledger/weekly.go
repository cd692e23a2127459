package ledger

import (
	"slices"  // Month ordering
	"strings" // Case-insensitive search
	"time"    // Month keys in a location

	"car_rental/internal/domain" // Car model
)

// MonthLayout formats ledger month keys
const MonthLayout = "2006-01"

// WeekLedger is the rented-cars table for one week of one month
type WeekLedger struct {
	Month        string       `json:"month"`
	Week         int          `json:"week"`
	Cars         []domain.Car `json:"cars"`
	TotalExpense float64      `json:"totalExpense"`
	TotalProfit  float64      `json:"totalProfit"`
	TotalLoss    float64      `json:"totalLoss"`
}

// Months lists the distinct creation months of rented cars, newest first
func Months(cars []domain.Car, loc *time.Location) []string {
	seen := make(map[string]bool)
	months := []string{}
	for _, car := range Rented(cars) {
		m := car.CreatedAt.In(loc).Format(MonthLayout)
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	slices.Sort(months)
	slices.Reverse(months)
	return months
}

// Week selects the rented cars created in month whose week ordinal equals
// week and whose carNumber contains search (case-insensitive), and totals
// their expense, profit and loss. Absent amounts count as zero.
func Week(cars []domain.Car, month string, week int, search string, loc *time.Location) WeekLedger {
	l := WeekLedger{Month: month, Week: week, Cars: []domain.Car{}}
	search = strings.ToLower(strings.TrimSpace(search))
	for _, car := range Rented(cars) {
		if car.CreatedAt.In(loc).Format(MonthLayout) != month {
			continue
		}
		if car.Week == nil || *car.Week != week {
			continue
		}
		if !strings.Contains(strings.ToLower(car.CarNumber), search) {
			continue
		}
		l.Cars = append(l.Cars, car)
		l.TotalExpense += domain.Value(car.Expense)
		l.TotalProfit += domain.Value(car.Profit)
		l.TotalLoss += domain.Value(car.Loss)
	}
	return l
}
