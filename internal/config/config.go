package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the complete application configuration, loaded from the
// environment with an optional .env file on top.
type Config struct {
	Addr           string
	DatabaseURL    string
	SessionSecret  string
	Production     bool
	AllowedOrigins []string

	// Object storage for avatars and content photos (S3-compatible).
	StorageAccountID    string
	StorageAccessKey    string
	StorageAccessSecret string
	StorageBucket       string
	// PublicURL is a format string with one %s slot for the object key,
	// e.g. "https://media.example.com/%s".
	PublicURL string
}

// Load reads configuration from environment variables. A missing .env
// file is fine; missing required values are not.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:                getEnvOrDefault("ADDR", ":3000"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SessionSecret:       os.Getenv("SESSION_SECRET"),
		Production:          os.Getenv("PRODUCTION") == "true",
		AllowedOrigins:      []string{"*"},
		StorageAccountID:    os.Getenv("ACCOUNT_ID"),
		StorageAccessKey:    os.Getenv("ACCESS_KEY_ID"),
		StorageAccessSecret: os.Getenv("ACCESS_KEY_SECRET"),
		StorageBucket:       os.Getenv("BUCKET_NAME"),
		PublicURL:           os.Getenv("PUBLIC_URL"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
