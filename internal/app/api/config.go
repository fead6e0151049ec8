package api

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	platformobservability "github.com/Apurer/dbmodel-tracking/internal/platform/observability"
)

const defaultArchiveAfterDays = 30

// Config carries environment-driven settings shared by the API, worker, and archiver processes.
type Config struct {
	Port                   string
	PostgresDSN            string
	TemporalAddress        string
	TemporalNamespace      string
	TemporalDisabled       bool
	AuthJWTSecret          string
	ArchiveAfterDays       int
	ArchiveIntervalMinutes int
	Environment            string
	LogLevel               slog.Level
	OTLPEndpoint           string
	OTLPInsecure           bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		AuthJWTSecret:     strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")),
		ArchiveAfterDays:  defaultArchiveAfterDays,
		Environment:       envDefault("ENVIRONMENT", "local"),
		LogLevel:          platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")),
		OTLPEndpoint:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:      isTruthy(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")),
	}
	if raw := strings.TrimSpace(os.Getenv("ARCHIVE_AFTER_DAYS")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return Config{}, fmt.Errorf("ARCHIVE_AFTER_DAYS must be a positive integer")
		}
		cfg.ArchiveAfterDays = days
	}
	if raw := strings.TrimSpace(os.Getenv("ARCHIVE_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("ARCHIVE_INTERVAL_MINUTES must be a positive integer")
		}
		cfg.ArchiveIntervalMinutes = minutes
	}
	return cfg, nil
}

// ArchiveCutoff returns the instant before which untouched notes count as stale.
func (c Config) ArchiveCutoff(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -c.ArchiveAfterDays)
}

// ObservabilitySettings derives the telemetry settings for a named process.
func (c Config) ObservabilitySettings(serviceName string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  c.Environment,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
		LogLevel:     c.LogLevel,
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
