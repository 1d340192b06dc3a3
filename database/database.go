package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/daran6255/msme/config"
	"github.com/daran6255/msme/models"
)

// Connect opens the postgres database and runs migrations. A missing DB
// fails the process immediately.
func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Candidate{},
		&models.Assessment{},
		&models.Attendance{},
		&models.Business{},
		&models.User{},
	)
}
