package migration_0

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FullName     string `gorm:"size:100;not null"`
	Email        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:256;not null"`
	CreatedAt    time.Time
}

type ChatHistory struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	User      *User  `gorm:"foreignKey:UserID"`
	Question  string `gorm:"type:text;not null"`
	Response  string `gorm:"type:text;not null"`
	Timestamp time.Time
}

type Feedback struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	User         *User  `gorm:"foreignKey:UserID"`
	Question     string `gorm:"type:text;not null"`
	FeedbackText string `gorm:"type:text;not null"`
	Sentiment    string `gorm:"size:20;not null"`
	Timestamp    time.Time
}

func Migration(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &ChatHistory{}, &Feedback{}); err != nil {
		return fmt.Errorf("initial migration failed: %w", err)
	}
	return nil
}
