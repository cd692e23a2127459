package domain

import "time" // Rental dates and timestamps

// Car Model
type Car struct {
	ID              uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Rego            string    `json:"rego"`                                       // Registration number
	CarModel        string    `json:"carModel"`                                   // Model name
	CarNumber       string    `gorm:"size:64;index" json:"carNumber"`             // Fleet tag
	Description     string    `gorm:"type:text" json:"description"`               // Free-text description
	ImageURL        string    `json:"imageUrl"`                                   // Car image reference
	RentPerWeek     *float64  `json:"rentPerWeek"`                                // Weekly rent, nil when unknown
	Receipt         string    `json:"receipt"`                                    // Receipt reference
	ReceiptImageURL string    `json:"receiptImageUrl"`                            // Receipt image reference
	AmountReceiver  *float64  `json:"amountReceiver"`                             // Amount received
	Expense         *float64  `json:"expense"`                                    // Expense
	Profit          *float64  `json:"profit"`                                     // Profit
	Loss            *float64  `json:"loss"`                                       // Loss
	Rented          bool      `gorm:"not null;default:false;index" json:"rented"` // Out on rent
	RentedDate      string    `json:"rentedDate"`                                 // Free-text or ISO date
	Week            *int      `json:"week"`                                       // Week of month, 1..4
	DriverID        string    `gorm:"size:64;index" json:"driverId"`              // Driver idNumber
	DriverName      string    `json:"driverName"`                                 // Driver name snapshot, never re-synced
	CreatedAt       time.Time `gorm:"index" json:"createdAt"`                     // Timestamp of creation
}

// CarForm is the editor form as decoded from JSON. Values may be strings or
// numbers; keys missing from the form are left untouched.
type CarForm map[string]any

type carField struct {
	key    string
	column string
	apply  func(car *Car, v any) error
}

// carFields lists every writable form key in a stable order
var carFields = []carField{
	{"rego", "rego", func(c *Car, v any) error { c.Rego = ToText(v); return nil }},
	{"carModel", "car_model", func(c *Car, v any) error { c.CarModel = ToText(v); return nil }},
	{"carNumber", "car_number", func(c *Car, v any) error { c.CarNumber = ToText(v); return nil }},
	{"description", "description", func(c *Car, v any) error { c.Description = ToText(v); return nil }},
	{"imageUrl", "image_url", func(c *Car, v any) error { c.ImageURL = ToText(v); return nil }},
	{"rentPerWeek", "rent_per_week", func(c *Car, v any) (err error) { c.RentPerWeek, err = currency("rentPerWeek", v); return }},
	{"receipt", "receipt", func(c *Car, v any) error { c.Receipt = ToText(v); return nil }},
	{"receiptImageUrl", "receipt_image_url", func(c *Car, v any) error { c.ReceiptImageURL = ToText(v); return nil }},
	{"amountReceiver", "amount_receiver", func(c *Car, v any) (err error) { c.AmountReceiver, err = currency("amountReceiver", v); return }},
	{"expense", "expense", func(c *Car, v any) (err error) { c.Expense, err = currency("expense", v); return }},
	{"profit", "profit", func(c *Car, v any) error { c.Profit = amount(v); return nil }},
	{"loss", "loss", func(c *Car, v any) error { c.Loss = amount(v); return nil }},
	{"rented", "rented", func(c *Car, v any) error { c.Rented = ToFlag(v); return nil }},
	{"rentedDate", "rented_date", func(c *Car, v any) error { c.RentedDate = ToText(v); return nil }},
	{"week", "week", func(c *Car, v any) (err error) { c.Week, err = week(v); return }},
	{"driverId", "driver_id", func(c *Car, v any) error { c.DriverID = ToText(v); return nil }},
	{"driverName", "driver_name", func(c *Car, v any) error { c.DriverName = ToText(v); return nil }},
}

// Apply writes every recognised key of the form onto car and returns the
// database columns it touched. Unknown keys, id and createdAt are ignored.
func (f CarForm) Apply(car *Car) ([]string, error) {
	var columns []string
	for _, field := range carFields {
		v, ok := f[field.key]
		if !ok {
			continue
		}
		if err := field.apply(car, v); err != nil {
			return nil, err
		}
		columns = append(columns, field.column)
	}
	return columns, nil
}

// NewCar builds a car from a creation form
func NewCar(form CarForm) (Car, error) {
	var car Car
	if _, err := form.Apply(&car); err != nil {
		return Car{}, err
	}
	return car, nil
}

// Pending is the rent still owed on this record; it may be negative
func (c Car) Pending() float64 {
	return Value(c.RentPerWeek) - Value(c.AmountReceiver)
}

// Value dereferences an optional amount, treating nil as zero
func Value(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func amount(v any) *float64 {
	f, ok := ToAmount(v)
	if !ok {
		return nil
	}
	return &f
}

func currency(field string, v any) (*float64, error) {
	f := amount(v)
	if f != nil && *f < 0 {
		return nil, NewValidationError(field, "must not be negative")
	}
	return f, nil
}

func week(v any) (*int, error) {
	f, ok := ToAmount(v)
	if !ok {
		return nil, nil
	}
	w := int(f)
	if float64(w) != f || w < 1 || w > 4 {
		return nil, NewValidationError("week", "must be a whole number between 1 and 4")
	}
	return &w, nil
}
