package store

import (
	"context" // Request-scoped cancellation
	"fmt"     // Error formatting

	"car_rental/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ReviewStore persists driver reviews
type ReviewStore struct {
	db *gorm.DB
}

// Create validates the submission, re-fetches the driver to snapshot its
// current name and image, and inserts the review. Validation happens before
// any query is issued.
func (s *ReviewStore) Create(ctx context.Context, in domain.ReviewInput) (domain.DriverReview, error) {
	rating, err := in.Validate()
	if err != nil {
		return domain.DriverReview{}, err
	}
	var driver domain.Driver
	if err := s.db.WithContext(ctx).First(&driver, in.DriverID).Error; err != nil {
		return domain.DriverReview{}, wrap(fmt.Sprintf("driver %d", in.DriverID), err)
	}
	review := domain.NewReview(driver, in, rating)
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return domain.DriverReview{}, wrap("create review", err)
	}
	return review, nil
}

// List returns every review, newest first
func (s *ReviewStore) List(ctx context.Context) ([]domain.DriverReview, error) {
	reviews := []domain.DriverReview{}
	if err := s.db.WithContext(ctx).Order(newestFirst).Find(&reviews).Error; err != nil {
		return nil, wrap("list reviews", err)
	}
	return reviews, nil
}
