package database

import (
	"fmt"

	"shoppinglist-service/internal/model"
	"shoppinglist-service/pkg/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the sqlite database and runs migrations
func InitDB(appConfig *config.Config) error {
	// sqlite ships with referential actions off; the availability cascade
	// depends on them. The DSN pragma applies to every pooled connection,
	// unlike a one-off PRAGMA statement.
	dsn := appConfig.DB.Path + "?_pragma=foreign_keys(1)"

	var err error
	db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(appConfig.DB.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to open database at %s: %w", appConfig.DB.Path, err)
	}

	// Run migrations
	if err := db.AutoMigrate(&model.Category{}, &model.Item{}, &model.ItemAvailability{}); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
