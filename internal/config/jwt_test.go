package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-0123456789")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("JWT_AUDIENCE", "")
	t.Setenv("JWT_ISSUER", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "test-secret-key-0123456789", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.Empty(t, cfg.Audience)
	assert.Empty(t, cfg.Issuer)
}

func TestNewJWTConfig_ProviderClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-0123456789")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("JWT_AUDIENCE", "authenticated")
	t.Setenv("JWT_ISSUER", "https://auth.example.com/auth/v1")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.ExpirationHours)
	assert.Equal(t, "authenticated", cfg.Audience)
	assert.Equal(t, "https://auth.example.com/auth/v1", cfg.Issuer)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestNewJWTConfig_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := NewJWTConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 16 characters")
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-0123456789")

	t.Setenv("JWT_EXPIRATION_HOURS", "soon")
	_, err := NewJWTConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JWT_EXPIRATION_HOURS")

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1 hour")
}
