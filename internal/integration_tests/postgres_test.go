package integrationtests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"citizenai-backend/internal/auth"
	"citizenai-backend/internal/database"
	"citizenai-backend/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()
	db := setupDatabase(t, ctx)

	require.NoError(t, database.GetMigrator(db).Migrate())
	assert.True(t, db.Migrator().HasColumn(&database.ChatHistory{}, "Metadata"))

	require.NoError(t, database.GetMigrator(db).RollbackLast())
	assert.False(t, db.Migrator().HasColumn(&database.ChatHistory{}, "Metadata"))

	require.NoError(t, database.GetMigrator(db).Migrate())
	assert.True(t, db.Migrator().HasColumn(&database.ChatHistory{}, "Metadata"))
}

func TestPostgresUniqueEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()
	db := setupDatabase(t, ctx)

	_, err := database.CreateUser(ctx, db, "Ada", "ada@example.com", "hash")
	require.NoError(t, err)

	_, err = database.CreateUser(ctx, db, "Ada Again", "ada@example.com", "hash")
	assert.ErrorIs(t, err, database.ErrDuplicateEmail)

	_, err = database.RecordChat(ctx, db, 12345, "q", "r", database.ChatMetadata{})
	assert.ErrorIs(t, err, database.ErrPersistence)
}

func TestPostgresUserJourney(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()
	db := setupDatabase(t, ctx)
	c := newClient(setupRouter(t, db))

	rec := c.postForm("/signup", url.Values{
		"full_name": {"Grace Hopper"},
		"email":     {"grace@example.com"},
		"password":  {"cobol-rules"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = c.postForm("/login", url.Values{"email": {"grace@example.com"}, "password": {"cobol-rules"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, c.cookies, auth.SessionCookieName)

	rec = c.postJSON("/chat", `{"message":"How do I register to vote?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var chat api.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chat))
	// "register" does not contain "registration", but the voting keywords match.
	assert.Contains(t, chat.Reply, "Regarding voting and elections:")

	rec = c.postForm("/submit_feedback", url.Values{
		"question": {"How do I register to vote?"},
		"feedback": {"This was great, really helpful and clear!"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = c.postForm("/submit_feedback", url.Values{"feedback": {"Terrible, awful experience."}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = c.get("/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="stat-positive">1<`)
	assert.Contains(t, rec.Body.String(), `id="stat-negative">1<`)
	assert.Contains(t, rec.Body.String(), `id="stat-total">2<`)

	var user database.User
	require.NoError(t, db.Where("email = ?", "grace@example.com").First(&user).Error)
	history, err := database.GetChatHistory(ctx, db, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.JSONEq(t, `{"category":"voting","sentiment":"neutral"}`, string(history[0].Metadata))

	rec = c.get("/logout")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotContains(t, c.cookies, auth.SessionCookieName)

	rec = c.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
