package database

import (
	"gorm.io/gorm"

	"github.com/pantryloop/backend/internal/models"
)

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMembership{},
		&models.Category{},
		&models.Product{},
		&models.Recipe{},
		&models.Ingredient{},
	)
}
