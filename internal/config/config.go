package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	Database DatabaseConfig
	State    StateConfig

	// Chat IDs granted the big boss role, comma-free single value per var
	BigBossID int64
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// StateConfig holds the lifetimes of the in-memory conversational state
type StateConfig struct {
	SessionTTL    time.Duration
	WizardTTL     time.Duration
	ThresholdTTL  time.Duration
	SweepInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "thermobot"),
			User:     getEnv("DB_USER", "thermobot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		State: StateConfig{
			SessionTTL:    getEnvSeconds("SESSION_TTL_SECONDS", 3600),
			WizardTTL:     getEnvSeconds("WIZARD_TTL_SECONDS", 1800),
			ThresholdTTL:  getEnvSeconds("THRESHOLD_TTL_SECONDS", 600),
			SweepInterval: getEnvSeconds("STATE_SWEEP_SECONDS", 300),
		},
	}

	if raw := os.Getenv("BIG_BOSS_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("BIG_BOSS_ID must be a chat id: %w", err)
		}
		cfg.BigBossID = id
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(defaultSeconds) * time.Second
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return time.Duration(defaultSeconds) * time.Second
	}
	return time.Duration(seconds) * time.Second
}
