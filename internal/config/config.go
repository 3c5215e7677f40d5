// Package config loads the gateway configuration from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables always win over it.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Redis   RedisConfig
	Session SessionConfig
	Journal JournalConfig
	Tracing TracingConfig
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// APIConfig describes the remote workshop API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	// Fake serves the boutique from memory instead of the remote API.
	Fake bool
}

type RedisConfig struct {
	Addr string
	// SettingsTTL bounds how long the fetched-once settings stay cached.
	SettingsTTL time.Duration
}

type SessionConfig struct {
	CookieName string
	// Secret signs the session cookie. It must be stable across restarts.
	Secret   string
	TokenTTL time.Duration
	Secure   bool
	// IdleTimeout is how long an unused cart and checkout stay in memory.
	IdleTimeout time.Duration
}

type JournalConfig struct {
	// Path of the sqlite mutation journal. Empty disables the journal.
	Path string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

// Load reads the configuration. Missing values fall back to local
// development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            ":" + getEnv("PORT", "8080"),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "https://tan-bison-374038.hostingersite.com/api/v1"),
			Timeout: getDuration("API_TIMEOUT", 15*time.Second),
			Fake:    getBool("API_FAKE", false),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "redis-cache:6379"),
			SettingsTTL: getDuration("SETTINGS_TTL", 10*time.Minute),
		},
		Session: SessionConfig{
			CookieName:  getEnv("SESSION_COOKIE", "storefront_session"),
			Secret:      getEnv("SESSION_SECRET", ""),
			TokenTTL:    getDuration("SESSION_TTL", 30*24*time.Hour),
			Secure:      getBool("SESSION_SECURE", false),
			IdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour),
		},
		Journal: JournalConfig{
			Path: getEnv("JOURNAL_PATH", "./data/journal.db"),
		},
		Tracing: TracingConfig{
			Enabled:     getBool("OTEL_ENABLED", true),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront"),
		},
	}

	if cfg.Session.Secret == "" {
		slog.Warn("SESSION_SECRET not set, using an insecure development secret")
		cfg.Session.Secret = "storefront-dev-secret-change-me-32b"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
