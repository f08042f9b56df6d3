package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage drivers supported by the key-value store adapter.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	Storage StorageConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	Admin   AdminConfig
}

// StorageConfig selects and parameterizes the key-value store backend.
type StorageConfig struct {
	Driver string // file | memory | postgres | redis
	Dir    string // data directory for the file driver
}

// DatabaseConfig contains PostgreSQL connection parameters
// (only required when the postgres storage driver is selected).
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters
// (only required when the redis storage driver is selected).
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AdminConfig contains the single admin panel account. The storefront has no
// user accounts; only the stock/orders panel is authenticated.
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt hash
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Storage
	cfg.Storage = StorageConfig{
		Driver: getEnv("STORAGE_DRIVER", DriverFile),
		Dir:    getEnv("STORAGE_DIR", "data"),
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Admin panel account
	cfg.Admin = AdminConfig{
		Email:        getEnv("ADMIN_EMAIL", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	switch cfg.Storage.Driver {
	case DriverFile:
		if cfg.Storage.Dir == "" {
			return nil, errors.New("storage configuration incomplete: STORAGE_DIR must be set for the file driver")
		}
	case DriverMemory:
		// Nothing to validate; data lives for the lifetime of the process.
	case DriverPostgres:
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	case DriverRedis:
		if cfg.Redis.Host == "" {
			return nil, errors.New("redis configuration incomplete: ensure REDIS_HOST is set")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (expected file, memory, postgres or redis)", cfg.Storage.Driver)
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for admin authentication")
	}

	if cfg.Admin.Email == "" || cfg.Admin.PasswordHash == "" {
		return nil, errors.New("admin configuration incomplete: ensure ADMIN_EMAIL and ADMIN_PASSWORD_HASH are set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
