package store

import (
	"context" // Request-scoped cancellation

	"car_rental/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserStore persists credential identities
type UserStore struct {
	db *gorm.DB
}

// Create inserts a user; the email must not already exist
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.User{}).Where("email = ?", user.Email).Count(&n).Error; err != nil {
			return wrap("check email", err)
		}
		if n > 0 {
			return domain.NewError("email already exists", domain.ErrConflict)
		}
		if err := tx.Create(user).Error; err != nil {
			return wrap("create user", err)
		}
		return nil
	})
}

// GetByEmail loads a user by exact email
func (s *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return domain.User{}, wrap("user", err)
	}
	return user, nil
}

// SyncAdmin makes the account whose email equals adminEmail the only admin.
// Every other admin is demoted, all of them when adminEmail is empty. The
// email comparison happens in Go so it stays case-sensitive whatever the
// column collation is.
func (s *UserStore) SyncAdmin(ctx context.Context, adminEmail string) (promoted, demoted int64, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []domain.User
		if err := tx.Where("role = ? OR email = ?", domain.RoleAdmin, adminEmail).Find(&candidates).Error; err != nil {
			return wrap("load admin candidates", err)
		}
		for _, user := range candidates {
			role := domain.RoleFor(user.Email, adminEmail)
			if role == user.Role {
				continue
			}
			if err := tx.Model(&domain.User{}).Where("id = ?", user.ID).Update("role", role).Error; err != nil {
				return wrap("sync admin role", err)
			}
			if role == domain.RoleAdmin {
				promoted++
			} else {
				demoted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return promoted, demoted, nil
}
