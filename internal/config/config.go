// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/baba/internal/llm"
	"github.com/abhisek/baba/internal/store"
)

// Session store kinds.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Port         string
	DBPath       string
	SessionStore string
	Redis        store.RedisConfig
	LogMode      string
	Debug        bool
	LLM          llm.Config
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// It reports whether a file was loaded.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	cfg := &Config{
		Port:         getEnv("BABA_PORT", "8080"),
		DBPath:       dbPath,
		SessionStore: strings.ToLower(getEnv("BABA_SESSION_STORE", StoreSQLite)),
		Redis: store.RedisConfig{
			Addr:     getEnv("BABA_REDIS_ADDR", ""),
			Password: getEnv("BABA_REDIS_PASSWORD", ""),
			DB:       getEnvInt("BABA_REDIS_DB", 0),
			TTL:      getEnvDuration("BABA_SESSION_TTL", 24*time.Hour),
		},
		LogMode: getEnv("BABA_LOG_MODE", "dev"),
		Debug:   getEnvBool("BABA_DEBUG", false),
		LLM:     llm.ConfigFromEnv(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the server settings. LLM settings are validated when the
// provider is built, since offline commands do not need one.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("BABA_PORT cannot be empty")
	}
	switch c.SessionStore {
	case StoreMemory:
	case StoreSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("BABA_DB cannot be empty with the sqlite session store")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("BABA_REDIS_ADDR is required with the redis session store")
		}
	default:
		return fmt.Errorf("unknown BABA_SESSION_STORE %q (want memory, sqlite or redis)", c.SessionStore)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("BABA_SESSION_TTL must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
