package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environments accepted in APP_ENV.
const (
	EnvDev        = "dev"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Config holds application configuration loaded from environment variables.
// It is built once at startup and passed to components explicitly.
type Config struct {
	ProjectName  string
	Version      string
	Environment  string
	HTTPPort     string
	BaseURL      string
	APIPrefix    string
	FiberPrefork bool

	CORSOrigins []string
	CORSMethods []string
	CORSHeaders []string

	TokenTimeout      time.Duration
	ReportPageTimeout time.Duration
	GA4BaseURL        string
	GA4PageSize       int

	MailchimpAPIKey  string
	MailchimpBaseURL string
	MailchimpTimeout time.Duration

	ClickHouseURL   string
	AuditBufferSize int
	AuditBatchSize  int
	AuditFlushEvery time.Duration
	MetricsEnabled  bool
	LogLevel        string
	LogFile         string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ProjectName:  getEnv("PROJECT_NAME", "Analytics Gateway"),
		Version:      getEnv("APP_VERSION", "0.1.0"),
		Environment:  strings.ToLower(getEnv("APP_ENV", EnvDev)),
		HTTPPort:     getEnv("HTTP_PORT", ":8000"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8000"),
		APIPrefix:    getEnv("API_PREFIX", "/api/v1"),
		FiberPrefork: parseBoolEnv("FIBER_PREFORK", false),

		CORSOrigins: parseListEnv("CORS_ORIGINS", []string{"*"}),
		CORSMethods: parseListEnv("CORS_METHODS", []string{"GET"}),
		CORSHeaders: parseListEnv("CORS_HEADERS", []string{
			"Content-Type",
			"Authorization",
			"X-OAuth-Credentials",
			"X-Property-ID",
			"Accept",
		}),

		TokenTimeout:      parseDurationEnv("TOKEN_TIMEOUT", 20*time.Second),
		ReportPageTimeout: parseDurationEnv("REPORT_PAGE_TIMEOUT", 30*time.Second),
		GA4BaseURL:        getEnv("GA4_BASE_URL", "https://analyticsdata.googleapis.com/"),
		GA4PageSize:       parseIntEnv("GA4_DEFAULT_PAGE_SIZE", 10000),

		MailchimpAPIKey:  os.Getenv("MAILCHIMP_API_KEY"),
		MailchimpBaseURL: os.Getenv("MAILCHIMP_BASE_URL"),
		MailchimpTimeout: parseDurationEnv("MAILCHIMP_TIMEOUT", 30*time.Second),

		ClickHouseURL:   os.Getenv("CLICKHOUSE_URL"),
		AuditBufferSize: parseIntEnv("AUDIT_BUFFER_SIZE", 1024),
		AuditBatchSize:  parseIntEnv("AUDIT_BATCH_SIZE", 100),
		AuditFlushEvery: parseDurationEnv("AUDIT_FLUSH_EVERY", 5*time.Second),
		MetricsEnabled:  parseBoolEnv("METRICS_ENABLED", true),
		LogLevel:        strings.ToLower(os.Getenv("LOG_LEVEL")),
		LogFile:         getEnv("LOG_FILE", "app.log"),
	}

	switch cfg.Environment {
	case EnvDev, EnvStaging, EnvProduction:
	default:
		return nil, fmt.Errorf("APP_ENV must be one of [%s %s %s], got %q", EnvDev, EnvStaging, EnvProduction, cfg.Environment)
	}
	if cfg.GA4PageSize <= 0 {
		return nil, fmt.Errorf("GA4_DEFAULT_PAGE_SIZE must be positive")
	}
	if cfg.AuditBatchSize <= 0 || cfg.AuditBufferSize <= 0 {
		return nil, fmt.Errorf("AUDIT_BATCH_SIZE and AUDIT_BUFFER_SIZE must be positive")
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// AuditEnabled reports whether report fetches are recorded in ClickHouse.
func (c *Config) AuditEnabled() bool {
	return c.ClickHouseURL != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}

// parseListEnv splits a comma separated value, dropping blanks.
func parseListEnv(key string, fallback []string) []string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
