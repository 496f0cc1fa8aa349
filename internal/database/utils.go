package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const MaxRecentFeedback = 10

var (
	ErrPersistence      = errors.New("persistence failure")
	ErrInvalidSentiment = errors.New("invalid sentiment label")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already registered")
)

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func now() time.Time {
	return time.Now().UTC()
}

func CreateUser(ctx context.Context, db *gorm.DB, fullName, email, passwordHash string) (User, error) {
	user := User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now(),
	}

	err := db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		return txn.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return User{}, ErrDuplicateEmail
		}
		slog.Error("error creating user", "email", email, "error", err)
		return User{}, persistenceError("create user", err)
	}
	return user, nil
}

func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (User, error) {
	var user User
	result := db.WithContext(ctx).Where("email = ?", email).Limit(1).Find(&user)
	if result.Error != nil {
		return User{}, persistenceError("get user by email", result.Error)
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func GetUserByID(ctx context.Context, db *gorm.DB, id uint) (User, error) {
	var user User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, persistenceError("get user by id", err)
	}
	return user, nil
}

type ChatMetadata struct {
	Category  string `json:"category"`
	Sentiment string `json:"sentiment"`
}

func RecordChat(ctx context.Context, db *gorm.DB, userID uint, question, response string, metadata ChatMetadata) (ChatHistory, error) {
	meta, err := json.Marshal(metadata)
	if err != nil {
		return ChatHistory{}, fmt.Errorf("could not marshal chat metadata: %w", err)
	}

	entry := ChatHistory{
		UserID:    userID,
		Question:  question,
		Response:  response,
		Timestamp: now(),
		Metadata:  datatypes.JSON(meta),
	}

	err = db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		return txn.Create(&entry).Error
	})
	if err != nil {
		slog.Error("error recording chat", "user_id", userID, "error", err)
		return ChatHistory{}, persistenceError("record chat", err)
	}
	return entry, nil
}

// RecordFeedback stores one feedback row. Feedback that is empty after trimming
// is discarded and reported with stored == false and a nil error.
func RecordFeedback(ctx context.Context, db *gorm.DB, userID uint, question, feedbackText, sentiment string) (entry Feedback, stored bool, err error) {
	feedbackText = strings.TrimSpace(feedbackText)
	if feedbackText == "" {
		return Feedback{}, false, nil
	}
	if !IsSentimentLabel(sentiment) {
		return Feedback{}, false, fmt.Errorf("%w: %q", ErrInvalidSentiment, sentiment)
	}

	entry = Feedback{
		UserID:       userID,
		Question:     question,
		FeedbackText: feedbackText,
		Sentiment:    sentiment,
		Timestamp:    now(),
	}

	err = db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		return txn.Create(&entry).Error
	})
	if err != nil {
		slog.Error("error recording feedback", "user_id", userID, "error", err)
		return Feedback{}, false, persistenceError("record feedback", err)
	}
	return entry, true, nil
}

func GetChatHistory(ctx context.Context, db *gorm.DB, userID uint) ([]ChatHistory, error) {
	var history []ChatHistory
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&history).Error; err != nil {
		return nil, persistenceError("get chat history", err)
	}
	return history, nil
}

func FeedbackStatsForUser(ctx context.Context, db *gorm.DB, userID uint) (FeedbackStats, error) {
	var sentiments []string
	if err := db.WithContext(ctx).
		Model(&Feedback{}).
		Where("user_id = ?", userID).
		Pluck("sentiment", &sentiments).Error; err != nil {
		return FeedbackStats{}, persistenceError("get feedback stats", err)
	}

	stats := FeedbackStats{Total: len(sentiments)}
	for _, sentiment := range sentiments {
		switch strings.ToLower(sentiment) {
		case "positive":
			stats.Positive++
		case "negative":
			stats.Negative++
		default:
			stats.Neutral++
		}
	}
	return stats, nil
}

func RecentFeedback(ctx context.Context, db *gorm.DB, userID uint, limit int) ([]Feedback, error) {
	if limit <= 0 || limit > MaxRecentFeedback {
		limit = MaxRecentFeedback
	}

	var entries []Feedback
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, persistenceError("get recent feedback", err)
	}
	return entries, nil
}
