package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// RunMigrations brings the schema up to date with the gorm models.
// PostgreSQL additionally gets the pgvector extension the embedding column needs.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to enable pgvector: %w", err)
		}
	}

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	logging.Info().Str("dialect", db.Dialector.Name()).Msg("schema migrated")
	return nil
}
