// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"encoding/hex"
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

// JWTConfig provides settings for validating identity-provider access tokens.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// SchedulerConfig provides settings for the background job queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// ReportingConfig provides settings for date-bucketed reporting.
type ReportingConfig interface {
	// GetReportingLocation returns the fixed timezone all calendar-day
	// bucketing uses. Defaults to Asia/Seoul.
	GetReportingLocation() *time.Location
	GetTrendDays() int
}

// GeoIPConfig provides settings for request-IP geolocation.
type GeoIPConfig interface {
	GetGeoIPDatabasePath() string
}

// GA4Config provides the analytics warehouse used for attribution enrichment.
// An empty project id disables enrichment.
type GA4Config interface {
	GetBigQueryProjectID() string
	GetGA4Dataset() string
}

// SecretsConfig provides the key used to encrypt provider credentials at rest.
type SecretsConfig interface {
	GetCredentialsKey() []byte
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	DatabaseURL       string
	JWTAccessSecret   string
	CORSAllowAll      bool
	CORSOrigins       []string
	CORSAllowCreds    bool
	EmailEnabled      bool
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	EmailFromName     string
	EmailFromAddress  string
	RedisURL          string
	RedisTLSInsecure  bool
	AsynqQueueName    string
	AsynqConcurrency  int
	ReportingTimezone string
	TrendDays         int
	GeoIPDatabasePath string
	BigQueryProjectID string
	GA4Dataset        string
	CredentialsKeyHex string

	reportingLocation *time.Location
	credentialsKey    []byte
}

// =============================================================================
// Interface Implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string     { return c.DatabaseURL }
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

func (c *Config) GetHTTPAddr() string       { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool     { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string  { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool   { return c.CORSAllowCreds }

func (c *Config) GetEmailEnabled() bool        { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string          { return c.SMTPHost }
func (c *Config) GetSMTPPort() int             { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string      { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string      { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string     { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string  { return c.EmailFromAddress }

func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

func (c *Config) GetReportingLocation() *time.Location { return c.reportingLocation }
func (c *Config) GetTrendDays() int                    { return c.TrendDays }

func (c *Config) GetGeoIPDatabasePath() string { return c.GeoIPDatabasePath }

func (c *Config) GetBigQueryProjectID() string { return c.BigQueryProjectID }
func (c *Config) GetGA4Dataset() string        { return c.GA4Dataset }

func (c *Config) GetCredentialsKey() []byte { return c.credentialsKey }

// =============================================================================
// Loading
// =============================================================================

// Load reads configuration from the environment, honoring a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTAccessSecret:   os.Getenv("JWT_ACCESS_SECRET"),
		CORSAllowAll:      getBoolEnv("CORS_ALLOW_ALL", false),
		CORSOrigins:       splitCSV(os.Getenv("CORS_ORIGINS")),
		CORSAllowCreds:    getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		EmailEnabled:      getBoolEnv("EMAIL_ENABLED", false),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Lead Ops"),
		EmailFromAddress:  getEnv("EMAIL_FROM_ADDRESS", "no-reply@localhost"),
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisTLSInsecure:  getBoolEnv("REDIS_TLS_INSECURE", false),
		AsynqQueueName:    getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:  getIntEnv("ASYNQ_CONCURRENCY", 10),
		ReportingTimezone: getEnv("REPORTING_TIMEZONE", "Asia/Seoul"),
		TrendDays:         getIntEnv("TREND_DAYS", 30),
		GeoIPDatabasePath: os.Getenv("GEOIP_DATABASE_PATH"),
		BigQueryProjectID: os.Getenv("BIGQUERY_PROJECT_ID"),
		GA4Dataset:        getEnv("GA4_DATASET", "analytics"),
		CredentialsKeyHex: os.Getenv("CREDENTIALS_KEY"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}

	loc, err := time.LoadLocation(cfg.ReportingTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORTING_TIMEZONE %q: %w", cfg.ReportingTimezone, err)
	}
	cfg.reportingLocation = loc

	if cfg.TrendDays < 1 {
		cfg.TrendDays = 30
	}

	if cfg.CredentialsKeyHex != "" {
		key, err := hex.DecodeString(cfg.CredentialsKeyHex)
		if err != nil || len(key) != 32 {
			return nil, fmt.Errorf("CREDENTIALS_KEY must be 64 hex characters (32 bytes)")
		}
		cfg.credentialsKey = key
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
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

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
