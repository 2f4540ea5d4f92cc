package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/database"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendApper    = "apper"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	StoreBackend   string
	ApperURL       string
	ApperProjectID string
	ApperPublicKey string
	ApperTimeout   time.Duration
	SeedDemoData   bool

	DB database.Config

	CartBackend   string
	RedisURL      string
	RedisPassword string
	RedisDB       int

	AMQPURL string
}

// Load reads .env when present and then the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		ApperURL:       getEnv("APPER_URL", ""),
		ApperProjectID: getEnv("APPER_PROJECT_ID", ""),
		ApperPublicKey: getEnv("APPER_PUBLIC_KEY", ""),
		ApperTimeout:   getEnvAsDuration("APPER_TIMEOUT", 15*time.Second),
		SeedDemoData:   getEnvAsBool("SEED_DEMO_DATA", true),

		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "app_user"),
			Password: getEnv("DB_PASSWORD", "postgres_password"),
			DBName:   getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 0),
		},

		CartBackend:   strings.ToLower(getEnv("CART_BACKEND", BackendMemory)),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		AMQPURL: getEnv("AMQP_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendPostgres:
	case BackendApper:
		if c.ApperURL == "" || c.ApperProjectID == "" {
			return errors.New("APPER_URL and APPER_PROJECT_ID are required for the apper backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.CartBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown CART_BACKEND %q", c.CartBackend)
	}
	return nil
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
