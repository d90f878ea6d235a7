package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	HTTPAddr          string
	CORSOrigins       []string
	DBDSN             string
	DBMaxConns        int
	RunMigrations     bool
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int
	LogLevel          string
	LogFormat         string

	RedisAddr       string
	RedisPassword   string
	VoiceRateLimit  int
	VoiceRateWindow time.Duration
	VoiceToken      string

	SMSWebhookURL   string
	SMSWebhookToken string
	BusinessPhone   string

	GalleryDir      string
	GalleryMaxBytes int64

	ReminderInterval time.Duration
	ReminderLead     time.Duration

	// AdminEmail and AdminPassword seed the first dashboard account on startup when both are set.
	AdminEmail    string
	AdminPassword string

	// EnvFileErr records why .env could not be loaded. It is informational; the file is optional.
	EnvFileErr error
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	// Load .env file if it exists
	cfg.EnvFileErr = godotenv.Load()

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	var err error
	cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	cfg.RunMigrations, err = getEnvAsBool("RUN_MIGRATIONS", false)
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_MIGRATIONS: %w", err)
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 12*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	defaultFormat := "console"
	if cfg.IsProduction {
		defaultFormat = "json"
	}
	cfg.LogFormat = getEnv("LOG_FORMAT", defaultFormat)

	// Redis is optional; without it the voice rate limiter is disabled.
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.VoiceRateLimit, err = getEnvAsInt("VOICE_RATE_LIMIT", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid VOICE_RATE_LIMIT: %w", err)
	}
	cfg.VoiceRateWindow, err = getEnvAsDuration("VOICE_RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid VOICE_RATE_WINDOW: %w", err)
	}
	cfg.VoiceToken = getEnv("VOICE_WEBHOOK_TOKEN", "")

	// Without an SMS webhook, notifications are only logged.
	cfg.SMSWebhookURL = getEnv("SMS_WEBHOOK_URL", "")
	cfg.SMSWebhookToken = getEnv("SMS_WEBHOOK_TOKEN", "")
	cfg.BusinessPhone = getEnv("BUSINESS_PHONE", "")

	cfg.GalleryDir = getEnv("GALLERY_DIR", "./data/gallery")
	maxBytes, err := getEnvAsInt("GALLERY_MAX_BYTES", 10<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid GALLERY_MAX_BYTES: %w", err)
	}
	cfg.GalleryMaxBytes = int64(maxBytes)

	cfg.ReminderInterval, err = getEnvAsDuration("REMINDER_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_INTERVAL: %w", err)
	}
	cfg.ReminderLead, err = getEnvAsDuration("REMINDER_LEAD", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_LEAD: %w", err)
	}

	cfg.AdminEmail = getEnv("ADMIN_EMAIL", "")
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}

// splitList parses a comma separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
