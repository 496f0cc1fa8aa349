package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"citizenai-backend/cmd"
	"citizenai-backend/internal/api"
	"citizenai-backend/internal/auth"
	"citizenai-backend/internal/core"
	"citizenai-backend/internal/database"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Config struct {
	Port               int           `env:"PORT" envDefault:"5000"`
	DatabaseURL        string        `env:"DATABASE_URL" envDefault:"citizenai.db"`
	SessionSecret      string        `env:"SESSION_SECRET"`
	AppEnv             string        `env:"APP_ENV" envDefault:"production"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CorsAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5000"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	CookieSecure       bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

func main() {
	log.Println("Starting CitizenAI server...")

	cmd.LoadEnvFile()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	cmd.ConfigureLogging(cfg.LogLevel)

	secret, err := cmd.SessionSecret(cfg.SessionSecret, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Invalid session configuration: %v", err)
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	if err := database.GetMigrator(db).Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	sessions, err := auth.NewSessionManager(secret, cfg.SessionTTL, cfg.CookieSecure)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	responder, err := core.NewResponder()
	if err != nil {
		log.Fatalf("Failed to load responses: %v", err)
	}

	renderer, err := api.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load page templates: %v", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	service := api.NewWebService(
		db,
		sessions,
		auth.NewCredentialStore(db),
		responder,
		core.NewFeedbackClassifier(core.NewVaderScorer()),
		renderer,
		cmd.SplitList(cfg.CorsAllowedOrigins),
	)
	service.AddRoutes(r)

	addr := ":" + strconv.Itoa(cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      75 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server listening", "addr", addr, "app_env", cfg.AppEnv)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", addr, err)
	}
	<-done

	log.Println("Server stopped.")
}
