package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"prayerlog/internal/db"
)

// Config holds everything the service and CLI read from the environment.
type Config struct {
	Addr      string
	DataDir   string
	Storage   db.Backend
	RedisURL  string
	RedisKey  string
	Location  *time.Location
	GuidePath string
	LogLevel  log.Level

	// Encouragement hook; disabled unless AIURL is set.
	AIURL    string
	AIAPIKey string
	AIModel  string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment alone. Every missing
// or invalid variable is reported in a single error.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:      getEnvOrDefault("PRAYERLOG_ADDR", ":8080"),
		DataDir:   getEnvOrDefault("PRAYERLOG_DATA_DIR", "./data"),
		Storage:   db.BackendFile,
		RedisKey:  getEnvOrDefault("PRAYERLOG_REDIS_PREFIX", db.DefaultRedisPrefix),
		Location:  time.Local,
		GuidePath: getEnvOrDefault("PRAYERLOG_GUIDE_PATH", "assets/acts.txt"),
		LogLevel:  log.InfoLevel,
		AIURL:     getEnvOrDefault("AI_URL", ""),
		AIAPIKey:  getEnvOrDefault("AI_API_KEY", ""),
		AIModel:   getEnvOrDefault("PRAYERLOG_AI_MODEL", "gpt-4o-mini"),
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 3)

	if value := env("PRAYERLOG_STORAGE"); value != "" {
		switch backend := db.Backend(strings.ToLower(value)); backend {
		case db.BackendFile, db.BackendSQLite, db.BackendRedis:
			cfg.Storage = backend
		default:
			invalid = append(invalid, "PRAYERLOG_STORAGE")
		}
	}

	cfg.RedisURL = env("PRAYERLOG_REDIS_URL")
	if cfg.Storage == db.BackendRedis && cfg.RedisURL == "" {
		missing = append(missing, "PRAYERLOG_REDIS_URL")
	}

	if value := env("PRAYERLOG_TIMEZONE"); value != "" {
		loc, err := time.LoadLocation(value)
		if err != nil {
			invalid = append(invalid, "PRAYERLOG_TIMEZONE")
		} else {
			cfg.Location = loc
		}
	}

	if value := env("PRAYERLOG_LOG_LEVEL"); value != "" {
		level, err := log.ParseLevel(value)
		if err != nil {
			invalid = append(invalid, "PRAYERLOG_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// Now returns the current time in the configured location. Calendar days
// are derived from it.
func (c Config) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

func (c Config) StorageOptions() db.Options {
	return db.Options{
		Backend:     c.Storage,
		DataDir:     c.DataDir,
		RedisURL:    c.RedisURL,
		RedisPrefix: c.RedisKey,
	}
}

func (c Config) AIEnabled() bool {
	return c.AIURL != ""
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := env(key); val != "" {
		return val
	}
	return defaultVal
}
