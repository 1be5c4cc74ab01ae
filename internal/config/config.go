package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Auth      AuthConfig
	Integrity IntegrityConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds the admin bootstrap credentials and session settings.
type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	JWTSecret     string
	SessionTTL    time.Duration
}

// IntegrityConfig holds the background sweep schedule.
type IntegrityConfig struct {
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	ttlHours, err := strconv.Atoi(getenvWithDefault("SESSION_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "workboard"),
		},
		Auth: AuthConfig{
			AdminUsername: getenvWithDefault("ADMIN_USERNAME", "admin"),
			AdminPassword: getenvWithDefault("ADMIN_PASSWORD", "admin123"),
			JWTSecret:     os.Getenv("JWT_SECRET"),
			SessionTTL:    time.Duration(ttlHours) * time.Hour,
		},
		Integrity: IntegrityConfig{
			CronSchedule: getenvWithDefault("INTEGRITY_CRON_SCHEDULE", "0 2 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL_HOURS must be positive")
	}

	if c.Integrity.CronSchedule == "" {
		return errors.New("INTEGRITY_CRON_SCHEDULE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
