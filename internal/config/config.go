// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/umaralireal1/qisst2026/internal/backup"
	"github.com/umaralireal1/qisst2026/internal/ledger"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Port        int
	DBDriver    string
	DBPath      string
	DatabaseURL string
	LogLevel    string

	// Location is the zone whose calendar decides "today".
	Location *time.Location

	BackupURL    string
	AutoSync     bool
	SyncDebounce time.Duration

	DrawEligibility ledger.EligibilityScope
	AlertCron       string

	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*Config, error) {
	// godotenv.Load does not override variables that are already set.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDriver:    strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverSQLite)),
		DBPath:      getEnvOrDefault("DB_PATH", "./data/qisst.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		BackupURL:   strings.TrimSpace(os.Getenv("BACKUP_URL")),
		AlertCron:   getEnvOrDefault("ALERT_CRON", "0 9 * * *"),

		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(getEnvOrDefault("PORT", "8080")); err != nil || cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want sqlite or postgres", cfg.DBDriver)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}

	cfg.Location = time.Local
	if tz := os.Getenv("TZ"); tz != "" {
		if cfg.Location, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("invalid TZ: %w", err)
		}
	}

	if cfg.AutoSync, err = strconv.ParseBool(getEnvOrDefault("AUTO_SYNC", "true")); err != nil {
		return nil, fmt.Errorf("invalid AUTO_SYNC: %w", err)
	}
	if cfg.SyncDebounce, err = time.ParseDuration(getEnvOrDefault("SYNC_DEBOUNCE", backup.DefaultDebounce.String())); err != nil {
		return nil, fmt.Errorf("invalid SYNC_DEBOUNCE: %w", err)
	}
	if cfg.SyncDebounce <= 0 {
		return nil, fmt.Errorf("SYNC_DEBOUNCE must be positive, got %s", cfg.SyncDebounce)
	}

	if cfg.DrawEligibility, err = ledger.ParseEligibilityScope(os.Getenv("DRAW_ELIGIBILITY")); err != nil {
		return nil, fmt.Errorf("invalid DRAW_ELIGIBILITY: %w", err)
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		if cfg.TelegramChatID, err = strconv.ParseInt(chatID, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}
	if (cfg.TelegramToken == "") != (cfg.TelegramChatID == 0) {
		return nil, fmt.Errorf("TELEGRAM_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	return cfg, nil
}

// TelegramEnabled reports whether alerts should also go to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
