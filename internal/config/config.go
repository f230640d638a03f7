package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort     string
	MetricsPort string
	LogLevel    string

	PatternsPath string
	ActionGapMax int

	MongoURI      string
	MongoDatabase string

	// Empty means the in-process normalizer built from the catalog's
	// stop-word and lemma tables.
	NormalizerURL string

	NATSURL     string
	NATSSubject string

	// Empty disables the audit trail.
	AuditPostgresDSN string

	APIRateLimitRPS   int
	APIRateLimitBurst int
	APIMaxInFlight    int

	BreakerEnabled bool
}

func Load() Config {
	return Config{
		APIPort:     mustEnv("API_PORT", "8080"),
		MetricsPort: mustEnv("METRICS_PORT", "9090"),
		LogLevel:    mustEnv("LOG_LEVEL", "info"),

		PatternsPath: mustEnv("PATTERNS_PATH", "./configs/patterns.yaml"),
		ActionGapMax: mustEnvInt("ACTION_GAP_MAX", 20),

		MongoURI:      mustEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: mustEnv("MONGO_DATABASE", "realty_lab"),

		NormalizerURL: mustEnv("NORMALIZER_URL", ""),

		NATSURL:     mustEnv("NATS_URL", ""),
		NATSSubject: mustEnv("NATS_SUBJECT", "records.inserted"),

		AuditPostgresDSN: mustEnv("AUDIT_POSTGRES_DSN", ""),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 50),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 100),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 64),

		BreakerEnabled: mustEnvBool("BREAKER_ENABLED", true),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
