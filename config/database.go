package config

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrewpaige1/coursemap-api/models"
)

// Connect opens the slot database. Postgres URLs use the postgres driver;
// anything else is treated as a sqlite path.
func Connect(dbURL string) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(dbURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate database: %w", err)
	}

	return db, nil
}

func dialector(dbURL string) gorm.Dialector {
	if isPostgres(dbURL) {
		return postgres.Open(dbURL)
	}
	return sqlite.Open(dbURL)
}

func isPostgres(dbURL string) bool {
	return strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://")
}
