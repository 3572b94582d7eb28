// Package config provides environment-driven configuration for the wikipath
// server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL    Secret
	Port           string
	ListenHost     string
	CORSOrigins    []string
	LogLevel       string
	DBMaxConns     int
	AdminAPIKey    Secret
	ArticleURLBase string
	SearchTimeout  time.Duration
	TitleCacheSize int
	TitleCacheTTL  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    Secret(envOrDefault("DATABASE_URL", "")),
		Port:           envOrDefault("PORT", "3030"),
		ListenHost:     envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		AdminAPIKey:    Secret(envOrDefault("ADMIN_API_KEY", "")),
		ArticleURLBase: envOrDefault("ARTICLE_URL_BASE", "https://en.wikipedia.org/"),
	}

	dbMaxConns, err := strconv.Atoi(envOrDefault("DB_MAX_CONNS", "21"))
	if err != nil || dbMaxConns < 2 || dbMaxConns > 200 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be an integer between 2 and 200")
	}
	cfg.DBMaxConns = dbMaxConns

	cacheSize, err := strconv.Atoi(envOrDefault("TITLE_CACHE_SIZE", "10000"))
	if err != nil || cacheSize < 0 {
		return nil, fmt.Errorf("TITLE_CACHE_SIZE must be a non-negative integer")
	}
	cfg.TitleCacheSize = cacheSize

	if cfg.SearchTimeout, err = parseDuration("SEARCH_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	if cfg.TitleCacheTTL, err = parseDuration("TITLE_CACHE_TTL", "10m"); err != nil {
		return nil, err
	}

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3002")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// BulkEnabled reports whether the bulk write endpoints are served.
func (c *Config) BulkEnabled() bool {
	return c.AdminAPIKey.Value() != ""
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration such as %q", key, fallback)
	}

	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
