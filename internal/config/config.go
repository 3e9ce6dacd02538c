package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Handoff queue backends
const (
	HandoffBackendMemory = "memory"
	HandoffBackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	BotToken         string
	RobotID          int64
	TrustProfileName bool
	MetricsAddr      string
	Database         DatabaseConfig
	Handoff          HandoffConfig
	Redis            RedisConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// HandoffConfig controls the attendance handoff debounce
type HandoffConfig struct {
	TTL     time.Duration
	Backend string
}

// RedisConfig holds redis connection settings for the redis handoff backend
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	robotID, err := strconv.ParseInt(getEnv("ROBOT_ID", "1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ROBOT_ID must be an integer: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("HANDOFF_TTL", "10s"))
	if err != nil {
		return nil, fmt.Errorf("HANDOFF_TTL must be a duration: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}

	trustName, err := strconv.ParseBool(getEnv("TRUST_PROFILE_NAME", "false"))
	if err != nil {
		return nil, fmt.Errorf("TRUST_PROFILE_NAME must be a boolean: %w", err)
	}

	cfg := &Config{
		BotToken:         os.Getenv("BOT_TOKEN"),
		RobotID:          robotID,
		TrustProfileName: trustName,
		MetricsAddr:      getEnv("METRICS_ADDR", ":2112"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "menubot"),
			User:     getEnv("DB_USER", "menubot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Handoff: HandoffConfig{
			TTL:     ttl,
			Backend: getEnv("HANDOFF_BACKEND", HandoffBackendMemory),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.Handoff.TTL <= 0 {
		return nil, fmt.Errorf("HANDOFF_TTL must be positive")
	}
	switch cfg.Handoff.Backend {
	case HandoffBackendMemory, HandoffBackendRedis:
	default:
		return nil, fmt.Errorf("HANDOFF_BACKEND must be %q or %q", HandoffBackendMemory, HandoffBackendRedis)
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for commands that do not talk to the bot API
func LoadDatabase() (*DatabaseConfig, error) {
	_ = godotenv.Load()

	db := &DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Name:     getEnv("DB_NAME", "menubot"),
		User:     getEnv("DB_USER", "menubot"),
		Password: os.Getenv("DB_PASSWORD"),
	}
	if db.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	return db, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return c.Database.DSN()
}

// DSN returns PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
