// Package config loads application configuration from the environment.
// A .env file is honored when present (development convenience); real
// environment variables always win.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port   int
	DBPath string

	// Admin credentials. The password is never stored; only its bcrypt
	// hash is configured (generate one with cmd/hashpw).
	AdminUsername     string
	AdminPasswordHash string

	// SessionSecret signs the admin session cookie.
	SessionSecret string

	// RateLimitLookup caps public lookups per IP per minute.
	RateLimitLookup int
}

// Load reads configuration from .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnvAsInt("PORT", 8080),
		DBPath:            getEnv("DB_PATH", "./data/results.db"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:     getEnv("SESSION_SECRET", "change-this-secret"),
		RateLimitLookup:   getEnvAsInt("RATE_LIMIT_LOOKUP", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
