package db

import (
	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

// ConnectTestDatabase opens an in-memory sqlite database for tests.
func ConnectTestDatabase() error {
	var err error

	DB, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		return err
	}

	// A pooled second connection to :memory: would see an empty database,
	// so pin the pool to a single connection.
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	return nil
}

func MigrateDatabase() error {
	entities := []interface{}{
		&models.User{},
		&models.Plot{},
		&models.Application{},
		&models.WorkDay{},
		&models.WorkDayAttendance{},
		&models.Payment{},
		&models.ForumQuestion{},
		&models.ForumAnswer{},
		&models.Message{},
		&models.Event{},
		&models.Notification{},
	}

	migrator := DB.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := DB.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}
