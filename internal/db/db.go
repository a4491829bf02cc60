package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"scholar-ai/internal/config"
	"scholar-ai/internal/scholarship"
)

var DB *gorm.DB

// Init opens the catalog database and migrates the schema. A postgres
// DSN wins when configured; otherwise a local sqlite file is used.
func Init(cfg *config.Config) error {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.Database.PostgresDSN != "" {
		db, err = gorm.Open(postgres.Open(cfg.Database.PostgresDSN), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.Database.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&scholarship.Scholarship{}); err != nil {
		return err
	}

	DB = db
	log.Printf("[DB] database connected and migrated")
	return nil
}
