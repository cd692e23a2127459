package store

import (
	"context" // Request-scoped cancellation
	"fmt"     // Error formatting

	"car_rental/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

const newestFirst = "created_at desc, id desc"

// CarStore persists fleet vehicles
type CarStore struct {
	db *gorm.DB
}

// Create inserts a car built from the editor form
func (s *CarStore) Create(ctx context.Context, form domain.CarForm) (domain.Car, error) {
	car, err := domain.NewCar(form)
	if err != nil {
		return domain.Car{}, err
	}
	if err := s.db.WithContext(ctx).Create(&car).Error; err != nil {
		return domain.Car{}, wrap("create car", err)
	}
	return car, nil
}

// List returns every car, newest first
func (s *CarStore) List(ctx context.Context) ([]domain.Car, error) {
	return s.find(s.db.WithContext(ctx), "list cars")
}

// ListByRented returns the cars whose rented flag equals rented, newest first
func (s *CarStore) ListByRented(ctx context.Context, rented bool) ([]domain.Car, error) {
	return s.find(s.db.WithContext(ctx).Where("rented = ?", rented), "list cars by rented")
}

// ListByDriver returns the rental history of the driver with idNumber, newest first
func (s *CarStore) ListByDriver(ctx context.Context, idNumber string) ([]domain.Car, error) {
	return s.find(s.db.WithContext(ctx).Where("driver_id = ?", idNumber), "list driver cars")
}

func (s *CarStore) find(q *gorm.DB, what string) ([]domain.Car, error) {
	cars := []domain.Car{}
	if err := q.Order(newestFirst).Find(&cars).Error; err != nil {
		return nil, wrap(what, err)
	}
	return cars, nil
}

// Get loads one car
func (s *CarStore) Get(ctx context.Context, id uint) (domain.Car, error) {
	var car domain.Car
	if err := s.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return domain.Car{}, wrap(fmt.Sprintf("car %d", id), err)
	}
	return car, nil
}

// Update writes through every field present in the form. Nothing is
// write-protected and no dependent field is cleared automatically.
func (s *CarStore) Update(ctx context.Context, id uint, form domain.CarForm) (domain.Car, error) {
	var car domain.Car
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&car, id).Error; err != nil {
			return wrap(fmt.Sprintf("car %d", id), err)
		}
		columns, err := form.Apply(&car)
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil // Nothing to write
		}
		if err := tx.Model(&car).Select(columns).Updates(&car).Error; err != nil {
			return wrap(fmt.Sprintf("update car %d", id), err)
		}
		return nil
	})
	if err != nil {
		return domain.Car{}, err
	}
	return car, nil
}

// Delete removes the car immediately
func (s *CarStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Car{}, id)
	if res.Error != nil {
		return wrap(fmt.Sprintf("delete car %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewError(fmt.Sprintf("car %d", id), domain.ErrNotFound)
	}
	return nil
}
