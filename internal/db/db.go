package db

import (
	"car_rental/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM query logger
)

// Models lists every persisted model in migration order
func Models() []any {
	return []any{&domain.User{}, &domain.Driver{}, &domain.Car{}, &domain.DriverReview{}}
}

// Open connects to MySQL; query logging is reduced to warnings in production
func Open(dsn string, isProd bool) (*gorm.DB, error) {
	level := logger.Info // Log every statement while developing
	if isProd {
		level = logger.Warn // Only slow queries and errors in production
	}
	return gorm.Open(mysql.Open(dsn), Config(level))
}

// Config is the gorm configuration shared by every connection. Driver errors
// are translated so a unique index violation surfaces as gorm.ErrDuplicatedKey.
func Config(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}

// AutoMigrate creates or updates the tables, columns and indexes of every model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn, true) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
