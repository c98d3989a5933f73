package postgres

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the PG connection and migrates the service-owned tables.
// dsn format: "host=localhost user=postgres password=root dbname=mydb port=5432 sslmode=disable"
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// clients and categories are migrated by the CRM service; only the
	// pipeline-owned tables are managed here
	if err := db.AutoMigrate(&TrainingDocument{}, &StyleProfile{}, &UsageRecord{}); err != nil {
		return nil, fmt.Errorf("migrate failed: %w", err)
	}

	return db, nil
}
