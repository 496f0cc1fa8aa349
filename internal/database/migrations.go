package database

import (
	"log"
	"log/slog"

	"citizenai-backend/internal/database/versions/migration_0"
	"citizenai-backend/internal/database/versions/migration_1"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func GetMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	migrator := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID:      "0",
			Migrate: migration_0.Migration,
		},
		{
			ID:       "1",
			Migrate:  migration_1.Migration,
			Rollback: migration_1.Rollback,
		},
	})

	migrator.InitSchema(func(txn *gorm.DB) error {
		// Runs only when no previous migration is recorded, creating the latest
		// schema directly instead of replaying every migration.

		log.Println("clean database detected, running full schema initialization")

		if err := enableForeignKeys(txn); err != nil {
			slog.Error("error enabling foreign keys for SQLite", "error", err)
		}

		return txn.AutoMigrate(&User{}, &ChatHistory{}, &Feedback{})
	})

	return migrator
}

// SQLite does not enforce foreign keys unless asked to on each connection.
func enableForeignKeys(db *gorm.DB) error {
	dbType := db.Dialector.Name()
	if dbType != "sqlite" && dbType != "sqlite3" {
		return nil
	}
	return db.Exec("PRAGMA foreign_keys = ON").Error
}
