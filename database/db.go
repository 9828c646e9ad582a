package database

import (
	"uandme/calendar"
	"uandme/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB *gorm.DB

	// Events is the drift-tolerant calendar store. Built after
	// migrations run so its column snapshot sees the final shape.
	Events *calendar.Repository
)

func Connect() error {
	cfg := config.GetConfig()

	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	if err := EnsureSchema(sqlDB); err != nil {
		return err
	}

	Events = calendar.NewRepository(sqlDB)
	return nil
}
