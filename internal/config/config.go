// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment
// variables (with optional .env overrides for local development).
type Config struct {
	APIBaseURL     string
	AuthAPIURL     string
	ListAPIURL     string
	FirebaseAPIKey string
	DBPath         string
	HTTPTimeout    time.Duration

	// SecretKey is the 32-byte AES-256 key protecting persisted session
	// tokens, or nil when unset (sessions then last one run only).
	SecretKey []byte

	missing []string
}

// NotConfiguredError aggregates every missing or placeholder variable so
// the user sees one actionable message instead of opaque per-call
// failures.
type NotConfiguredError struct {
	Missing []string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf(
		"missing environment configuration: %s (copy .env.example and set your credentials)",
		strings.Join(e.Missing, ", "),
	)
}

// placeholderValues are the template values shipped in .env.example; a
// variable still holding one counts as unset.
var placeholderValues = map[string]bool{
	"your-firebase-api-key": true,
	"your-api-key":          true,
	"your-api-key-here":     true,
}

func isPlaceholder(value string) bool {
	return value == "" || placeholderValues[value]
}

// Load reads configuration from the environment, after loading an
// optional .env file (existing environment variables win). Backend URLs:
// INKU_API_BASE_URL is required for backend commands; INKU_AUTH_API_URL
// and INKU_LIST_API_URL default to the catalog base, mirroring the web
// client's same-origin default. INKU_FIREBASE_API_KEY is checked for
// placeholder values. Missing values do not fail Load; they are
// aggregated and surfaced by Configured(). INKU_SECRET_KEY, when set,
// must be 64 hex characters (a 32-byte AES-256 key); leaving it unset
// disables session persistence rather than failing.
func Load() (*Config, error) {
	// Absent .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		APIBaseURL:     os.Getenv("INKU_API_BASE_URL"),
		AuthAPIURL:     os.Getenv("INKU_AUTH_API_URL"),
		ListAPIURL:     os.Getenv("INKU_LIST_API_URL"),
		FirebaseAPIKey: os.Getenv("INKU_FIREBASE_API_KEY"),
	}

	if cfg.AuthAPIURL == "" {
		cfg.AuthAPIURL = cfg.APIBaseURL
	}
	if cfg.ListAPIURL == "" {
		cfg.ListAPIURL = cfg.APIBaseURL
	}

	cfg.DBPath = "inku.db"
	if v, ok := os.LookupEnv("INKU_DB_PATH"); ok {
		cfg.DBPath = v
	}

	cfg.HTTPTimeout = 30 * time.Second
	if v, ok := os.LookupEnv("INKU_HTTP_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("INKU_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		cfg.HTTPTimeout = parsed
	}

	if v := os.Getenv("INKU_SECRET_KEY"); v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("INKU_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("INKU_SECRET_KEY must be 64 hex characters (32 bytes), got %d bytes", len(key))
		}
		cfg.SecretKey = key
	}

	if cfg.APIBaseURL == "" {
		cfg.missing = append(cfg.missing, "INKU_API_BASE_URL")
	}
	if isPlaceholder(cfg.FirebaseAPIKey) {
		cfg.missing = append(cfg.missing, "INKU_FIREBASE_API_KEY")
	} else if strings.Contains(cfg.FirebaseAPIKey, "example") || len(cfg.FirebaseAPIKey) < 20 {
		cfg.missing = append(cfg.missing, "INKU_FIREBASE_API_KEY (invalid format)")
	}

	return cfg, nil
}

// Configured returns nil when every required variable is set, or a
// NotConfiguredError naming all missing ones.
func (c *Config) Configured() error {
	if len(c.missing) == 0 {
		return nil
	}
	return &NotConfiguredError{Missing: append([]string(nil), c.missing...)}
}
