package database

import (
	"time"

	"citizenai-backend/pkg/api"

	"gorm.io/datatypes"
)

const (
	SentimentPositive = api.SentimentPositive
	SentimentNegative = api.SentimentNegative
	SentimentNeutral  = api.SentimentNeutral
)

func IsSentimentLabel(label string) bool {
	switch label {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FullName     string `gorm:"size:100;not null"`
	Email        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:256;not null"`
	CreatedAt    time.Time

	FeedbackEntries []Feedback `gorm:"foreignKey:UserID"`
}

type ChatHistory struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	User      *User  `gorm:"foreignKey:UserID"`
	Question  string `gorm:"type:text;not null"`
	Response  string `gorm:"type:text;not null"`
	Timestamp time.Time
	Metadata  datatypes.JSON `gorm:"type:jsonb"` // {"category":"…","sentiment":"…"}
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

type FeedbackStats struct {
	Positive int
	Neutral  int
	Negative int
	Total    int
}
