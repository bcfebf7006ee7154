// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
)

// Config is the configuration shared by every binary.
type Config struct {
	StorageBackend string
	HTTPPort       string

	AccountsTable     string
	TransactionsTable string
	RewardsTable      string
	UserRewardsTable  string

	DatabaseURL string

	// SQSQueueURL is optional; events are disabled when it is empty.
	SQSQueueURL string

	StartingBalance    int64
	MaxEarnAmount      int64
	CORSAllowedOrigins []string
	LogLevel           slog.Level

	// CatalogFile, when set, seeds the reward and content catalog in memory mode.
	CatalogFile string
}

// Load reads a .env file if present and then the environment.
func Load() (*Config, error) {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		StorageBackend:    strings.ToLower(withDefault(getenv("STORAGE_BACKEND"), BackendMemory)),
		HTTPPort:          withDefault(getenv("HTTP_PORT"), "8080"),
		AccountsTable:     getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		TransactionsTable: getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		RewardsTable:      getenv("DYNAMODB_REWARDS_TABLE_NAME"),
		UserRewardsTable:  getenv("DYNAMODB_USER_REWARDS_TABLE_NAME"),
		DatabaseURL:       getenv("DATABASE_URL"),
		SQSQueueURL:       getenv("SQS_QUEUE_URL"),
		CatalogFile:       getenv("CATALOG_FILE"),
	}

	var err error
	if cfg.StartingBalance, err = intFromEnv(getenv, "STARTING_BALANCE", 25); err != nil {
		return nil, err
	}
	if cfg.MaxEarnAmount, err = intFromEnv(getenv, "MAX_EARN_AMOUNT", 100); err != nil {
		return nil, err
	}

	if origins := getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	} else {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	if level := getenv("LOG_LEVEL"); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings required by the selected backend are present.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendDynamoDB:
		if c.AccountsTable == "" || c.TransactionsTable == "" || c.RewardsTable == "" || c.UserRewardsTable == "" {
			return errors.New("one or more DynamoDB table name environment variables are not set")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.StartingBalance < 0 {
		return errors.New("STARTING_BALANCE must not be negative")
	}
	if c.MaxEarnAmount <= 0 {
		return errors.New("MAX_EARN_AMOUNT must be positive")
	}
	return nil
}

// NewLogger returns a JSON slog logger at the configured level.
func (c *Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: c.LogLevel}))
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func intFromEnv(getenv func(string) string, key string, fallback int64) (int64, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
