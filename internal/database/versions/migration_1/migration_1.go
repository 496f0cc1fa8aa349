package migration_1

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatHistory struct {
	Metadata datatypes.JSON `gorm:"type:jsonb"`
}

func Migration(db *gorm.DB) error {
	if err := db.Migrator().AddColumn(&ChatHistory{}, "Metadata"); err != nil {
		return fmt.Errorf("error adding metadata column to chat history: %w", err)
	}
	return nil
}

func Rollback(db *gorm.DB) error {
	if err := db.Migrator().DropColumn(&ChatHistory{}, "Metadata"); err != nil {
		return fmt.Errorf("error dropping metadata column from chat history: %w", err)
	}
	return nil
}
