package cmd

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func LoadEnvFile() {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	if configPath == "" {
		log.Printf("no env file specified, using os.Environ only")
		return
	}

	log.Printf("loading env from file %s", configPath)
	err := godotenv.Load(configPath)
	if err != nil {
		log.Fatalf("error loading .env file '%s': %v", configPath, err)
	}
}

func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

func ConfigureLogging(level string) {
	l, err := ParseLogLevel(level)
	if err != nil {
		log.Fatalf("error configuring logging: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// SessionSecret returns the configured secret. Only a development environment
// may run without one, in which case a random per-process key is generated and
// every session is lost on restart.
func SessionSecret(secret, appEnv string) ([]byte, error) {
	if secret != "" {
		return []byte(secret), nil
	}
	if appEnv != "development" {
		return nil, fmt.Errorf("SESSION_SECRET must be set when APP_ENV=%q", appEnv)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("error generating session secret: %w", err)
	}
	slog.Warn("SESSION_SECRET is not set, using a random key; sessions will not survive a restart")
	return key, nil
}

func SplitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
