package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	JWTSecret    string
	JWTExpiresIn time.Duration

	DatabaseURL string
	SQLitePath  string
	RedisURL    string

	UploadDir     string
	StorageDriver string
}

// Load reads configuration from the environment, with .env as a
// convenience for development. The signing secret has no default; the
// process refuses to start without one.
func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("FRONTEND_URL", "http://localhost:8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("DB_PATH", "./data/student_bay.db"),
		RedisURL:    os.Getenv("REDIS_URL"),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	expiresIn := getEnv("JWT_EXPIRES_IN", "168h")
	ttl, err := time.ParseDuration(expiresIn)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	cfg.JWTExpiresIn = ttl

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
