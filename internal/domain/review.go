package domain

import (
	"strings" // Whitespace trimming
	"time"    // Timestamps
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// DriverReview Model. DriverName and DriverImageURL are snapshots taken at
// submission time and are never re-synced with the driver record.
type DriverReview struct {
	ID             uint      `gorm:"primaryKey" json:"id"`           // Primary key
	DriverID       uint      `gorm:"index;not null" json:"driverId"` // Reviewed driver
	DriverName     string    `json:"driverName"`                     // Name snapshot
	DriverImageURL string    `json:"driverImageUrl"`                 // Image snapshot
	CarImageURL    string    `json:"carImageUrl"`                    // Car image reference
	Description    string    `gorm:"type:text" json:"description"`   // Review text
	Rating         int       `gorm:"not null" json:"rating"`         // 1..5
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`         // Timestamp of creation
}

// ReviewInput is a review submission. Rating may arrive as a number or a numeric string.
type ReviewInput struct {
	DriverID    uint   `json:"driverId"`    // Driver primary key from verification
	Description string `json:"description"` // Required text
	Rating      any    `json:"rating"`      // Integer 1..5
	CarImageURL string `json:"carImageUrl"` // Required car image reference
}

// Validate checks the submission and returns the normalised rating
func (in ReviewInput) Validate() (int, error) {
	if in.DriverID == 0 {
		return 0, NewValidationError("driverId", "is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return 0, NewValidationError("description", "is required")
	}
	if strings.TrimSpace(in.CarImageURL) == "" {
		return 0, NewValidationError("carImageUrl", "is required")
	}
	f, ok := ToAmount(in.Rating)
	if !ok || f != float64(int(f)) || int(f) < MinRating || int(f) > MaxRating {
		return 0, NewValidationError("rating", "must be an integer between 1 and 5")
	}
	return int(f), nil
}

// NewReview snapshots the driver onto a review built from a validated input
func NewReview(driver Driver, in ReviewInput, rating int) DriverReview {
	return DriverReview{
		DriverID:       driver.ID,
		DriverName:     driver.Name,
		DriverImageURL: driver.ImageURL,
		CarImageURL:    strings.TrimSpace(in.CarImageURL),
		Description:    strings.TrimSpace(in.Description),
		Rating:         rating,
	}
}
