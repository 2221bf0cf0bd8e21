package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "profile-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())

	assert.Equal(t, 60*time.Minute, cfg.Setup.SessionTTL())
	assert.False(t, cfg.Setup.AllowSkip)

	assert.Equal(t, 10*time.Minute, cfg.Verification.CodeTTL())
	assert.Equal(t, 60*time.Second, cfg.Verification.ResendCooldown())
	assert.Equal(t, 6, cfg.Verification.CodeLength)
	assert.Equal(t, 3, cfg.Verification.MaxAttempts)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Encoding)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SETUP_ALLOW_SKIP", "true")
	t.Setenv("SETUP_SESSION_TTL_MINUTES", "15")
	t.Setenv("VERIFICATION_RESEND_COOLDOWN_SECONDS", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.True(t, cfg.Setup.AllowSkip)
	assert.Equal(t, 15*time.Minute, cfg.Setup.SessionTTL())
	assert.Equal(t, 120*time.Second, cfg.Verification.ResendCooldown())
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("VERIFICATION_MAX_ATTEMPTS", "not-a-number")
	t.Setenv("SETUP_ALLOW_SKIP", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Verification.MaxAttempts)
	assert.False(t, cfg.Setup.AllowSkip)
}
