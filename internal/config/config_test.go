package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "postgres://localhost/barbershop")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 12*time.Hour, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 30, cfg.VoiceRateLimit)
	assert.Equal(t, time.Minute, cfg.VoiceRateWindow)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.ReminderInterval)
	assert.Equal(t, 24*time.Hour, cfg.ReminderLead)
	assert.Empty(t, cfg.AdminEmail)
	assert.Equal(t, int64(10<<20), cfg.GalleryMaxBytes)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("VOICE_RATE_WINDOW", "30s")
	t.Setenv("REMINDER_LEAD", "2h")
	t.Setenv("BUSINESS_PHONE", "+18095550000")
	t.Setenv("GALLERY_MAX_BYTES", "2048")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 30*time.Second, cfg.VoiceRateWindow)
	assert.Equal(t, 2*time.Hour, cfg.ReminderLead)
	assert.Equal(t, "+18095550000", cfg.BusinessPhone)
	assert.Equal(t, int64(2048), cfg.GalleryMaxBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "secret")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_DSN")

	t.Setenv("DB_DSN", "postgres://localhost/barbershop")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	setRequired(t)
	t.Setenv("BCRYPT_COST", "twelve")
	_, err := Load()
	assert.ErrorContains(t, err, "BCRYPT_COST")
}

func TestLoadRejectsMalformedReminderInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("REMINDER_INTERVAL", "often")
	_, err := Load()
	assert.ErrorContains(t, err, "REMINDER_INTERVAL")
}
