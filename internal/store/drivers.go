package store

import (
	"context" // Request-scoped cancellation
	"fmt"     // Error formatting
	"slices"  // Column lookup

	"car_rental/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// DriverStore persists drivers
type DriverStore struct {
	db *gorm.DB
}

// Create inserts a driver; idNumber must not already be registered
func (s *DriverStore) Create(ctx context.Context, in domain.DriverInput) (domain.Driver, error) {
	driver, err := domain.NewDriver(in)
	if err != nil {
		return domain.Driver{}, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureIDNumberFree(tx, driver.IDNumber, 0); err != nil {
			return err
		}
		if err := tx.Create(&driver).Error; err != nil {
			return wrap("create driver", err)
		}
		return nil
	})
	if err != nil {
		return domain.Driver{}, err
	}
	return driver, nil
}

// List returns every driver ordered by id descending
func (s *DriverStore) List(ctx context.Context) ([]domain.Driver, error) {
	drivers := []domain.Driver{}
	if err := s.db.WithContext(ctx).Order("id desc").Find(&drivers).Error; err != nil {
		return nil, wrap("list drivers", err)
	}
	return drivers, nil
}

// Get loads one driver by primary key
func (s *DriverStore) Get(ctx context.Context, id uint) (domain.Driver, error) {
	var driver domain.Driver
	if err := s.db.WithContext(ctx).First(&driver, id).Error; err != nil {
		return domain.Driver{}, wrap(fmt.Sprintf("driver %d", id), err)
	}
	return driver, nil
}

// GetByIDNumber loads one driver by business identifier
func (s *DriverStore) GetByIDNumber(ctx context.Context, idNumber string) (domain.Driver, error) {
	var driver domain.Driver
	if err := s.db.WithContext(ctx).Where("id_number = ?", idNumber).First(&driver).Error; err != nil {
		return domain.Driver{}, wrap("driver "+idNumber, err)
	}
	return driver, nil
}

// Update writes the provided fields. idNumber may only change while no car
// references the current one, since cars store it as their driverId.
func (s *DriverStore) Update(ctx context.Context, id uint, in domain.DriverInput) (domain.Driver, error) {
	var driver domain.Driver
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&driver, id).Error; err != nil {
			return wrap(fmt.Sprintf("driver %d", id), err)
		}
		previous := driver.IDNumber // Value cars point at
		columns, err := in.Apply(&driver)
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil
		}
		if slices.Contains(columns, "id_number") && driver.IDNumber != previous {
			if err := ensureUnassigned(tx, previous); err != nil {
				return err
			}
			if err := ensureIDNumberFree(tx, driver.IDNumber, driver.ID); err != nil {
				return err
			}
		}
		if err := tx.Model(&driver).Select(columns).Updates(&driver).Error; err != nil {
			return wrap(fmt.Sprintf("update driver %d", id), err)
		}
		return nil
	})
	if err != nil {
		return domain.Driver{}, err
	}
	return driver, nil
}

// Delete removes a driver. It is refused while any car still references the
// driver's idNumber, so no car is left pointing at a missing driver.
func (s *DriverStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var driver domain.Driver
		if err := tx.First(&driver, id).Error; err != nil {
			return wrap(fmt.Sprintf("driver %d", id), err)
		}
		if err := ensureUnassigned(tx, driver.IDNumber); err != nil {
			return err
		}
		if err := tx.Delete(&driver).Error; err != nil {
			return wrap(fmt.Sprintf("delete driver %d", id), err)
		}
		return nil
	})
}

// ensureUnassigned fails with ErrConflict while any car references idNumber
func ensureUnassigned(tx *gorm.DB, idNumber string) error {
	var cars int64
	if err := tx.Model(&domain.Car{}).Where("driver_id = ?", idNumber).Count(&cars).Error; err != nil {
		return wrap("count driver cars", err)
	}
	if cars > 0 {
		return fmt.Errorf("driver %s is assigned to %d car(s): %w", idNumber, cars, domain.ErrConflict)
	}
	return nil
}

// ensureIDNumberFree fails with ErrConflict when another driver owns idNumber
func ensureIDNumberFree(tx *gorm.DB, idNumber string, exceptID uint) error {
	var n int64
	if err := tx.Model(&domain.Driver{}).Where("id_number = ? AND id <> ?", idNumber, exceptID).Count(&n).Error; err != nil {
		return wrap("check driver idNumber", err)
	}
	if n > 0 {
		return fmt.Errorf("idNumber %s already registered: %w", idNumber, domain.ErrConflict)
	}
	return nil
}
