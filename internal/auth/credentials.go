package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"citizenai-backend/internal/database"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrValidation         = errors.New("please fill in all fields")
	ErrDuplicateEmail     = database.ErrDuplicateEmail
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
)

type CredentialStore struct {
	db   *gorm.DB
	cost int
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db, cost: bcrypt.DefaultCost}
}

func (s *CredentialStore) Register(ctx context.Context, fullName, email, password string) (database.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" || password == "" {
		return database.User{}, ErrValidation
	}

	_, err := database.GetUserByEmail(ctx, s.db, email)
	switch {
	case err == nil:
		return database.User{}, ErrDuplicateEmail
	case !errors.Is(err, database.ErrUserNotFound):
		return database.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(password), s.cost)
	if err != nil {
		return database.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := database.CreateUser(ctx, s.db, fullName, email, string(hash))
	if err != nil {
		return database.User{}, err
	}

	slog.Info("registered user", "user_id", user.ID)
	return user, nil
}

func (s *CredentialStore) Authenticate(ctx context.Context, email, password string) (database.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return database.User{}, ErrValidation
	}

	user, err := database.GetUserByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return database.User{}, ErrInvalidCredentials
		}
		return database.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), prehash(password)); err != nil {
		return database.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// prehash digests the password so that every byte of it reaches bcrypt, which
// only reads the first 72.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
