// Package config loads runtime settings for the storefront server from the
// environment. The resulting Config is built once at startup and passed
// explicitly into the services that need it; nothing reads the environment
// after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting for the server.
//
// SessionSecret is required and must be long enough for HMAC-SHA256.
// The provider credentials are optional: when absent, provider calls fail
// with a structured configuration error instead of the server refusing to
// start, so the catalog and auth surfaces stay usable.
type Config struct {
	Port         string
	DatabasePath string

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	BcryptCost    int

	ProviderAPIID   string
	ProviderAPIKey  string
	ProviderBaseURL string
	ProviderTimeout time.Duration

	// Optional bootstrap administrator, created and promoted at startup.
	AdminEmail    string
	AdminPassword string
}

const (
	defaultPort            = "8080"
	defaultDatabasePath    = "velora.db"
	defaultProviderBaseURL = "https://vip-reseller.co.id/api"
	defaultProviderTimeout = 10 * time.Second
	defaultBcryptCost      = 12

	// Sessions live 30 days from issuance; an active session is renewed
	// implicitly by the session middleware re-issuing the token.
	defaultSessionTTL = 30 * 24 * time.Hour
)

// Load reads configuration from the environment. A missing or short
// SESSION_SECRET is a startup fault and returns an error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            envOrDefault("PORT", defaultPort),
		DatabasePath:    envOrDefault("DATABASE_PATH", defaultDatabasePath),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionTTL:      defaultSessionTTL,
		BcryptCost:      defaultBcryptCost,
		ProviderAPIID:   os.Getenv("PROVIDER_API_ID"),
		ProviderAPIKey:  os.Getenv("PROVIDER_API_KEY"),
		ProviderBaseURL: envOrDefault("PROVIDER_BASE_URL", defaultProviderBaseURL),
		ProviderTimeout: defaultProviderTimeout,
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}
	if len(cfg.SessionSecret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	// Default to secure cookies; disable only for local development.
	cfg.CookieSecure = os.Getenv("COOKIE_SECURE") != "false"

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if parsed < 4 || parsed > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", parsed)
		}
		cfg.BcryptCost = parsed
	}

	return cfg, nil
}

// HasProviderCredentials reports whether both reseller API secrets are set.
func (c *Config) HasProviderCredentials() bool {
	return c.ProviderAPIID != "" && c.ProviderAPIKey != ""
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
