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
	Timeclock TimeclockConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification configuration. Tokens are issued by the
// product's auth service; this backend only verifies them.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// TimeclockConfig holds the folder-import source settings. ImportDir may be
// empty, in which case folder import is refused at call time.
type TimeclockConfig struct {
	ImportDir    string
	MaxFiles     int
	DefaultFiles int
}

func Load() (*Config, error) {
	// .env is optional; deployments may set the environment directly.
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
		Name:     getEnv("DB_NAME", "samarqand_backoffice"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	maxFiles, err := strconv.Atoi(getEnv("TIMECLOCK_MAX_FILES", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMECLOCK_MAX_FILES: %w", err)
	}
	defaultFiles, err := strconv.Atoi(getEnv("TIMECLOCK_DEFAULT_FILES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMECLOCK_DEFAULT_FILES: %w", err)
	}

	config.Timeclock = TimeclockConfig{
		ImportDir:    getEnv("TIMECLOCK_IMPORT_DIR", ""),
		MaxFiles:     maxFiles,
		DefaultFiles: defaultFiles,
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
	if c.Timeclock.MaxFiles < 1 || c.Timeclock.MaxFiles > 50 {
		return fmt.Errorf("TIMECLOCK_MAX_FILES must be between 1 and 50")
	}
	if c.Timeclock.DefaultFiles < 1 || c.Timeclock.DefaultFiles > c.Timeclock.MaxFiles {
		return fmt.Errorf("TIMECLOCK_DEFAULT_FILES must be between 1 and TIMECLOCK_MAX_FILES")
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
