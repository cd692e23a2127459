// Package store holds the gorm-backed persistence for cars, drivers,
// reviews and users. Every operation touches a single row or a single
// ordered query; errors come back wrapped around the domain sentinels.
package store

import (
	"errors" // Error matching
	"fmt"    // Error wrapping

	"car_rental/internal/domain" // Error sentinels

	"gorm.io/gorm" // GORM ORM library
)

// Store groups the per-entity stores over one connection pool
type Store struct {
	Cars    *CarStore
	Drivers *DriverStore
	Reviews *ReviewStore
	Users   *UserStore
}

// New builds every store on db
func New(db *gorm.DB) *Store {
	return &Store{
		Cars:    &CarStore{db: db},
		Drivers: &DriverStore{db: db},
		Reviews: &ReviewStore{db: db},
		Users:   &UserStore{db: db},
	}
}

// wrap maps a gorm error onto the domain taxonomy, keeping the cause
func wrap(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewError(what, domain.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewError(what+": already exists", domain.ErrConflict) // Lost a race on a unique index
	}
	return fmt.Errorf("%s: %w: %w", what, domain.ErrStorage, err)
}
