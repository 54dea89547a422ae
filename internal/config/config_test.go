package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:5000/api")
	t.Setenv("COOKIE_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.ProfileTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingAPIBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("COOKIE_SECRET", "0123456789abcdef0123456789abcdef")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadShortSecret(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:5000/api")
	t.Setenv("COOKIE_SECRET", "short")

	_, err := config.Load()
	assert.ErrorContains(t, err, "COOKIE_SECRET")
}
