package database

import (
	"fmt"

	"vlinky_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema. uuid-ossp backs the uuid_generate_v4() column
// defaults used by every table.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to enable uuid-ossp: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.CreatorApplication{},
		&models.VideoRequest{},
		&models.CreatorEarnings{},
		&models.ActivityLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
