package config

import (
	"os"
	"strconv"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
	"github.com/meetsmatch/notifykit/internal/telemetry"
)

// Config holds runtime settings loaded from env vars.
type Config struct {
	Environment string

	LogLevel      string
	LogFormat     string // "text" or "json"
	LogOutput     string // "stdout", "stderr" or a file path
	LogRotation   bool
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	Telemetry *telemetry.Config
}

// Load loads configuration from environment variables.
// Optional variables with defaults: ENVIRONMENT, LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT,
// LOG_ROTATION, LOG_MAX_SIZE_MB, LOG_MAX_BACKUPS, LOG_MAX_AGE_DAYS and the OTEL_* set.
func Load() Config {
	return Config{
		Environment:   envOr("ENVIRONMENT", "development"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "text"),
		LogOutput:     envOr("LOG_OUTPUT", "stderr"),
		LogRotation:   envBool("LOG_ROTATION", false),
		LogMaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: envInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 28),
		Telemetry:     loadTelemetry(),
	}
}

func loadTelemetry() *telemetry.Config {
	def := telemetry.DefaultConfig()
	return &telemetry.Config{
		ServiceName:    envOr("OTEL_SERVICE_NAME", def.ServiceName),
		ServiceVersion: envOr("OTEL_SERVICE_VERSION", def.ServiceVersion),
		Environment:    envOr("ENVIRONMENT", def.Environment),
		OTLPEndpoint:   envOr("OTEL_EXPORTER_OTLP_ENDPOINT", def.OTLPEndpoint),
		Enabled:        envBool("OTEL_ENABLED", def.Enabled),
	}
}

// Validate checks that the logging settings are usable.
func (c Config) Validate() error {
	if _, ok := telemetry.ParseLogLevel(c.LogLevel); !ok {
		return apperrors.NewConfigurationError("LOG_LEVEL", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return apperrors.NewConfigurationError("LOG_FORMAT", c.LogFormat)
	}
	if c.LogOutput == "" {
		return apperrors.NewConfigurationError("LOG_OUTPUT", c.LogOutput)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// LogConfig converts the logging settings for telemetry.NewLogger.
func (c Config) LogConfig() *telemetry.LogConfig {
	level, _ := telemetry.ParseLogLevel(c.LogLevel)
	return &telemetry.LogConfig{
		Level:      level,
		Format:     c.LogFormat,
		Output:     c.LogOutput,
		Rotation:   c.LogRotation,
		MaxSize:    c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAgeDays,
		Compress:   true,
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
