package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setProductionEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "production")
	for _, k := range []string{
		"DATABASE_URL", "PORT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "REQUEST_TIMEOUT", "MIGRATE_ON_START",
		"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE", "EMAIL_PROVIDER", "AWS_SES_ENDPOINT", "AWS_SES_INSECURE_SKIP_VERIFY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setProductionEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Contains(t, cfg.DBUrl, "conventions")
	assert.Error(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	setProductionEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("REQUEST_TIMEOUT", "250ms")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ISSUER", "https://idp.example.com/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "https://idp.example.com/", cfg.JWT.Issuer)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"REQUEST_TIMEOUT", "soon"},
		{"REQUEST_TIMEOUT", "-1s"},
		{"MIGRATE_ON_START", "maybe"},
		{"LOG_LEVEL", "verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			setProductionEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
