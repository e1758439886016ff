package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage drivers for the snapshot store.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

type Config struct {
	Addr                string
	DataDir             string
	StorageDriver       string
	DBPath              string
	JWTSecret           string
	AccessTokenMinutes  int
	RefreshTokenMinutes int
	FlushQueueSize      int
	LogLevel            string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DataDir:             envOr("DATA_DIR", "./data"),
		StorageDriver:       envOr("STORAGE_DRIVER", DriverJSON),
		DBPath:              envOr("DB_PATH", "file:flashdeck.db"),
		JWTSecret:           envOr("JWT_SECRET", ""),
		AccessTokenMinutes:  envIntOr("ACCESS_TOKEN_MINUTES", 15),
		RefreshTokenMinutes: envIntOr("REFRESH_TOKEN_MINUTES", 7*24*60),
		FlushQueueSize:      envIntOr("FLUSH_QUEUE_SIZE", 64),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR cannot be empty")
	}
	if c.StorageDriver != DriverJSON && c.StorageDriver != DriverSQLite {
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverJSON, DriverSQLite, c.StorageDriver)
	}
	if c.StorageDriver == DriverSQLite && c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty with the sqlite driver")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.AccessTokenMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_MINUTES must be positive")
	}
	if c.RefreshTokenMinutes <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_MINUTES must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
