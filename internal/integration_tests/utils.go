package integrationtests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"citizenai-backend/internal/api"
	"citizenai-backend/internal/auth"
	"citizenai-backend/internal/core"
	"citizenai-backend/internal/database"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupPostgresContainer(t *testing.T, ctx context.Context) string {
	dbName, dbUser, dbPassword := "test_db", "test_user", "test_password"

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	t.Cleanup(func() {
		err := postgresContainer.Terminate(context.Background())
		require.NoError(t, err, "Failed to terminate PostgreSQL container")
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get PostgreSQL connection string")

	return connStr
}

func setupDatabase(t *testing.T, ctx context.Context) *gorm.DB {
	db, err := database.NewDatabase(setupPostgresContainer(t, ctx))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	require.NoError(t, database.GetMigrator(db).Migrate())
	return db
}

func setupRouter(t *testing.T, db *gorm.DB) http.Handler {
	sessions, err := auth.NewSessionManager([]byte("integration-secret"), time.Hour, false)
	require.NoError(t, err)

	responder, err := core.NewResponder()
	require.NoError(t, err)

	renderer, err := api.NewRenderer()
	require.NoError(t, err)

	router := chi.NewRouter()
	api.NewWebService(
		db,
		sessions,
		auth.NewCredentialStore(db),
		responder,
		core.NewFeedbackClassifier(nil),
		renderer,
		[]string{"http://localhost:5000"},
	).AddRoutes(router)

	return router
}

type client struct {
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newClient(handler http.Handler) *client {
	return &client{handler: handler, cookies: map[string]*http.Cookie{}}
}

// do sends the request with the current cookie jar and records any cookies set
// in the response.
func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
		} else {
			c.cookies[cookie.Name] = cookie
		}
	}
	return rec
}

func (c *client) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}
