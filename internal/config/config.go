// Package config provides environment-driven configuration for kingraphd.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
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

// Registry source kinds.
const (
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

// Config holds all application configuration values.
type Config struct {
	Source           string
	DatabaseURL      Secret
	TreeFile         string
	Port             string
	ListenHost       string
	CORSOrigins      []string
	LogLevel         string
	MaxTraverseNodes int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Source:      envOrDefault("SOURCE", SourcePostgres),
		DatabaseURL: Secret(envOrDefault("DATABASE_URL", "")),
		TreeFile:    envOrDefault("TREE_FILE", ""),
		Port:        envOrDefault("PORT", "3060"),
		ListenHost:  envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
	}

	maxNodes, err := strconv.Atoi(envOrDefault("MAX_TRAVERSE_NODES", "10000"))
	if err != nil || maxNodes < 1 || maxNodes > 1_000_000 {
		return nil, fmt.Errorf("MAX_TRAVERSE_NODES must be an integer between 1 and 1000000")
	}

	cfg.MaxTraverseNodes = maxNodes

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3061")
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

// envOrDefault returns the environment value for key, or def when unset.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
