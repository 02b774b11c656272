package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Hierarchy HierarchyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// HierarchyConfig holds tunables for hierarchy traversal and report queries.
type HierarchyConfig struct {
	// MaxDepth caps recursive hierarchy building. Requests asking for more
	// levels are clamped, never honored.
	MaxDepth int
	// ReportBatchSize is the maximum number of employee ids per report
	// store query; larger accessible sets are chunked and merged.
	ReportBatchSize int
	// RecentWindowDays is the rolling window used by team stats and
	// company analytics.
	RecentWindowDays int
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "wellmind"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Hierarchy configuration
	maxDepth, err := strconv.Atoi(getEnv("HIERARCHY_MAX_DEPTH", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid HIERARCHY_MAX_DEPTH: %w", err)
	}
	batchSize, err := strconv.Atoi(getEnv("REPORT_QUERY_BATCH_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_QUERY_BATCH_SIZE: %w", err)
	}
	windowDays, err := strconv.Atoi(getEnv("RECENT_WINDOW_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECENT_WINDOW_DAYS: %w", err)
	}

	config.Hierarchy = HierarchyConfig{
		MaxDepth:         maxDepth,
		ReportBatchSize:  batchSize,
		RecentWindowDays: windowDays,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Hierarchy.MaxDepth < 1 {
		return fmt.Errorf("HIERARCHY_MAX_DEPTH must be at least 1")
	}
	if c.Hierarchy.ReportBatchSize < 1 {
		return fmt.Errorf("REPORT_QUERY_BATCH_SIZE must be at least 1")
	}
	if c.Hierarchy.RecentWindowDays < 1 {
		return fmt.Errorf("RECENT_WINDOW_DAYS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
