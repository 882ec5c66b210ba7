package database

import (
	"fmt"

	"tradebot-dashboard-go/internal/session"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New creates a new database connection and performs auto-migration.
func New(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&session.Session{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}
