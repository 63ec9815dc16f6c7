// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// AuthConfig provides settings needed by the auth service.
type AuthConfig interface {
	JWTConfig
	GetTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSOrigins() []string
}

// QueueConfig provides settings for the asynq-backed job queue.
type QueueConfig interface {
	GetRedisURL() string
	GetQueueName() string
	GetQueueConcurrency() int
	GetQueueMaxRetry() int
	GetQueueRetryBaseDelay() time.Duration
	GetQueueRetryMaxDelay() time.Duration
}

// SMTPConfig provides settings for the mail transport.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetMailFromName() string
	GetMailFromAddress() string
}

// StorageConfig provides settings for MinIO avatar storage.
type StorageConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetAvatarBucket() string
	GetMaxAvatarSize() int64
	GetFileBaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	RedisURL            string
	QueueName           string
	QueueConcurrency    int
	QueueMaxRetry       int
	QueueRetryBaseDelay time.Duration
	QueueRetryMaxDelay  time.Duration

	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	MailFromName    string
	MailFromAddress string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
	AvatarBucket   string
	MaxAvatarSize  int64
	FileBaseURL    string

	CORSOrigins []string
}

// Load reads configuration from the environment, loading a .env file first
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":3333"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getDurationEnv("JWT_TTL", 7*24*time.Hour),

		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379/0"),
		QueueName:           getEnv("QUEUE_NAME", "default"),
		QueueConcurrency:    getIntEnv("QUEUE_CONCURRENCY", 5),
		QueueMaxRetry:       getIntEnv("QUEUE_MAX_RETRY", 5),
		QueueRetryBaseDelay: getDurationEnv("QUEUE_RETRY_BASE_DELAY", 10*time.Second),
		QueueRetryMaxDelay:  getDurationEnv("QUEUE_RETRY_MAX_DELAY", 10*time.Minute),

		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getIntEnv("SMTP_PORT", 587),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		MailFromName:    getEnv("MAIL_FROM_NAME", "GoBarber Team"),
		MailFromAddress: getEnv("MAIL_FROM_ADDRESS", "noreply@gobarber.test"),

		MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),
		AvatarBucket:   getEnv("MINIO_BUCKET_AVATARS", "avatars"),
		MaxAvatarSize:  getInt64Env("MINIO_MAX_AVATAR_SIZE", 2<<20),
		FileBaseURL:    getEnv("FILE_BASE_URL", "http://localhost:3333/files"),

		CORSOrigins: splitEnv("CORS_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// =============================================================================
// Interface implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

func (c *Config) GetJWTSecret() string       { return c.JWTSecret }
func (c *Config) GetTokenTTL() time.Duration { return c.TokenTTL }

func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

func (c *Config) GetRedisURL() string                   { return c.RedisURL }
func (c *Config) GetQueueName() string                  { return c.QueueName }
func (c *Config) GetQueueConcurrency() int              { return c.QueueConcurrency }
func (c *Config) GetQueueMaxRetry() int                 { return c.QueueMaxRetry }
func (c *Config) GetQueueRetryBaseDelay() time.Duration { return c.QueueRetryBaseDelay }
func (c *Config) GetQueueRetryMaxDelay() time.Duration  { return c.QueueRetryMaxDelay }

func (c *Config) GetSMTPHost() string        { return c.SMTPHost }
func (c *Config) GetSMTPPort() int           { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string    { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string    { return c.SMTPPassword }
func (c *Config) GetMailFromName() string    { return c.MailFromName }
func (c *Config) GetMailFromAddress() string { return c.MailFromAddress }

func (c *Config) GetMinIOEndpoint() string  { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool      { return c.MinIOUseSSL }
func (c *Config) GetAvatarBucket() string   { return c.AvatarBucket }
func (c *Config) GetMaxAvatarSize() int64   { return c.MaxAvatarSize }
func (c *Config) GetFileBaseURL() string    { return c.FileBaseURL }

// =============================================================================
// Env helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getInt64Env(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getBoolEnv(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func splitEnv(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
