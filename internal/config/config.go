// Package config loads configuration from the environment, after reading an
// optional .env file from the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	// APIURL is the backend base URL. Defaults to "http://localhost:8080".
	APIURL string

	// InitData is a raw launch payload to use outside the host.
	InitData string

	// BotToken signs and verifies launch payloads.
	BotToken string

	// BotName is the bot's username, used to build t.me links.
	BotName string

	// Port is where the stub server listens. Defaults to "8080".
	Port string

	LogLevel string

	// DatabaseType selects the activity log driver: sqlite or postgres.
	DatabaseType string

	// DatabaseURL is the postgres DSN or the sqlite file path. For sqlite it
	// defaults to activity.db in the user config directory.
	DatabaseURL string

	HTTPTimeout time.Duration
}

// LoadDotEnv reads .env into the environment. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads the client configuration.
func Load() (Config, error) {
	cfg := Config{
		APIURL:       strings.TrimRight(getEnv("DAYFINDER_API_URL", "http://localhost:8080"), "/"),
		InitData:     os.Getenv("TELEGRAM_INIT_DATA"),
		BotToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		BotName:      os.Getenv("TELEGRAM_BOT_NAME"),
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DatabaseType: strings.ToLower(getEnv("DATABASE_TYPE", DatabaseSQLite)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	switch cfg.DatabaseType {
	case DatabaseSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = defaultSQLitePath()
		}
	case DatabasePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, missing("DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("invalid DATABASE_TYPE %q: must be %s or %s", cfg.DatabaseType, DatabaseSQLite, DatabasePostgres)
	}

	return cfg, nil
}

// LoadServer reads the configuration of the stub backend, which cannot run
// without a bot token.
func LoadServer() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}

	var unset []string
	if cfg.BotToken == "" {
		unset = append(unset, "TELEGRAM_BOT_TOKEN")
	}
	if cfg.BotName == "" {
		unset = append(unset, "TELEGRAM_BOT_NAME")
	}
	if len(unset) > 0 {
		return Config{}, missing(unset...)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Addr is the stub server listen address.
func (c Config) Addr() string {
	if _, err := strconv.Atoi(c.Port); err == nil {
		return "0.0.0.0:" + c.Port
	}
	return c.Port
}

func missing(keys ...string) error {
	return fmt.Errorf("required environment variables not set: %s", strings.Join(keys, ", "))
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "dayfinder", "activity.db")
}

// getEnv returns the value of key, or fallback when it is unset or empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
