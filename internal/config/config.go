package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port    string
	BaseURL string

	// Storage configuration
	StorageBackend    string // memory, mysql, postgres, sqlite, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Demo data seeding
	SeedDemoData bool
}

// Load loads configuration from the environment, with optional .env overrides.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:3000"),
		StorageBackend:    getEnv("STORAGE_BACKEND", "memory"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		SeedDemoData:      getEnvAsBool("SEED_DEMO_DATA", true),
	}

	// Validate required fields
	switch cfg.StorageBackend {
	case "memory":
		// No database settings required.
	case "mysql", "mariadb", "postgres", "postgresql", "sqlite", "sqlserver", "mssql":
		if cfg.DBDatabase == "" {
			return nil, fmt.Errorf("DB_DATABASE is required for backend %q", cfg.StorageBackend)
		}
		if cfg.StorageBackend != "sqlite" && cfg.DBUser == "" {
			return nil, fmt.Errorf("DB_USER is required for backend %q", cfg.StorageBackend)
		}
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
