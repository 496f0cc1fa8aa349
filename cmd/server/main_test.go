package main

import (
	"os"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "SESSION_SECRET", "APP_ENV", "SESSION_TTL", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "COOKIE_SECURE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := env.ParseAs[Config]()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "citizenai.db", cfg.DatabaseURL)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "http://localhost:5000", cfg.CorsAllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.CookieSecure)
}

func TestConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost/citizenai")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := env.ParseAs[Config]()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://user:pw@localhost/citizenai", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
}
