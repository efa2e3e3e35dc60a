// Package migrations applies the database schema.
package migrations

import (
	"gorm.io/gorm"

	"github.com/mcpforge/mcpforge/internal/model"
)

// Migrate runs auto-migrations for all registry models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Server{},
		&model.Tool{},
	)
}
