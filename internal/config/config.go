// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration. Parsed once at startup with
// caarlos0/env; a .env file, when present, is loaded by main beforehand.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`

	// BaseURL is the public origin of the site, used for canonical links.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// APIBaseURL is the root of the Vroum-Auto API, including /api.
	APIBaseURL string `env:"API_BASE_URL,notEmpty"`

	// APITimeout bounds each API call.
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// CookieSecret encrypts the session token and flash cookies. At
	// least 32 bytes.
	CookieSecret string `env:"COOKIE_SECRET,notEmpty,unset"`

	// CookieSecure marks cookies Secure; disable only for local HTTP.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	// RedisURL enables the shared profile and listing cache. Empty
	// falls back to in-process memory caches.
	RedisURL string `env:"REDIS_URL"`

	// ProfileTTL bounds how long a resolved user profile is reused
	// before /auth/me is consulted again.
	ProfileTTL time.Duration `env:"PROFILE_TTL" envDefault:"5m"`

	// FeaturedTTL bounds the home page featured-vehicle cache.
	FeaturedTTL time.Duration `env:"FEATURED_TTL" envDefault:"10m"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// SentryDSN enables error reporting when set.
	SentryDSN string `env:"SENTRY_DSN"`

	// Environment tags logs and Sentry events (development, production).
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// RequestTimeout bounds full request handling.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if len(cfg.CookieSecret) < 32 {
		return Config{}, fmt.Errorf("config: COOKIE_SECRET must be at least 32 bytes")
	}
	return cfg, nil
}
