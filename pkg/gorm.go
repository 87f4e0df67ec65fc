package pkg

import (
	"fmt"

	"github.com/formforge/formbuilder-service/internal/config"
	"github.com/formforge/formbuilder-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate brings the schema up to date for the two persisted aggregates.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Form{}, &models.Response{})
}
