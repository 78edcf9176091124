package database

import (
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/model"
)

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Recipe{},
	)
}
