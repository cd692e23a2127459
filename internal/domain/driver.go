package domain

import (
	"strings" // Whitespace trimming
	"time"    // Timestamps
)

// Driver Model
type Driver struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Name        string    `gorm:"not null" json:"name"`                         // Display name
	PhoneNumber string    `json:"phoneNumber"`                                  // Phone number
	IDNumber    string    `gorm:"size:64;uniqueIndex;not null" json:"idNumber"` // Business identifier used for verification
	Address     string    `json:"address"`                                      // Postal address
	ImageURL    string    `json:"imageUrl"`                                     // Optional image reference
	CreatedAt   time.Time `json:"createdAt"`                                    // Timestamp of creation
}

// DriverInput carries driver fields; nil fields are not written
type DriverInput struct {
	Name        *string `json:"name"`        // Display name
	PhoneNumber *string `json:"phoneNumber"` // Phone number
	IDNumber    *string `json:"idNumber"`    // Business identifier
	Address     *string `json:"address"`     // Postal address
	ImageURL    *string `json:"imageUrl"`    // Image reference
}

// Apply writes the provided fields onto driver and returns the touched columns
func (in DriverInput) Apply(driver *Driver) ([]string, error) {
	var columns []string
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, NewValidationError("name", "is required")
		}
		driver.Name = name
		columns = append(columns, "name")
	}
	if in.IDNumber != nil {
		idNumber := strings.TrimSpace(*in.IDNumber)
		if idNumber == "" {
			return nil, NewValidationError("idNumber", "is required")
		}
		driver.IDNumber = idNumber
		columns = append(columns, "id_number")
	}
	if in.PhoneNumber != nil {
		driver.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
		columns = append(columns, "phone_number")
	}
	if in.Address != nil {
		driver.Address = *in.Address
		columns = append(columns, "address")
	}
	if in.ImageURL != nil {
		driver.ImageURL = *in.ImageURL
		columns = append(columns, "image_url")
	}
	return columns, nil
}

// NewDriver builds a driver from a creation input; name and idNumber are required
func NewDriver(in DriverInput) (Driver, error) {
	if in.Name == nil {
		return Driver{}, NewValidationError("name", "is required")
	}
	if in.IDNumber == nil {
		return Driver{}, NewValidationError("idNumber", "is required")
	}
	var driver Driver
	if _, err := in.Apply(&driver); err != nil {
		return Driver{}, err
	}
	return driver, nil
}
