package db

import (
	"stocktracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// AutoMigrate creates tables, missing foreign keys, constraints, columns and
// indexes, and seeds the fixed roles
func AutoMigrate(db *gorm.DB) error {
	// AutoMigrate all domain models
	err := db.AutoMigrate(&domain.Role{}, &domain.User{}, &domain.Stock{}, &domain.Comment{}, &domain.Portfolio{})
	if err != nil {
		return err // Return error if migration fails
	}
	return seedRoles(db) // Seed the fixed roles
}

// seedRoles inserts the two fixed roles with their fixed identifiers,
// idempotently
func seedRoles(db *gorm.DB) error {
	// The role set is fixed: Admin and User, seeded once at initialization
	roles := []domain.Role{
		{ID: domain.RoleAdminID, Name: "Admin"},
		{ID: domain.RoleUserID, Name: "User"},
	}
	for _, role := range roles {
		// FirstOrCreate keeps re-running migrations safe
		if err := db.Where("id = ?", role.ID).FirstOrCreate(&role).Error; err != nil {
			return err // Return error if seeding fails
		}
	}
	return nil
}
