package database

import (
	"log"

	"taskpro/api/models"

	"gorm.io/gorm"
)

// RunMigrations creates or updates the users and tasks tables. Users go
// first so the tasks foreign key has a target.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)

	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	return nil
}
