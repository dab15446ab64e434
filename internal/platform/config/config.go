package config

import (
	"os"
	"strings"
	"time"

	platformstrings "clientele/pkg/platform/strings"
)

// Config captures everything the server needs from the environment.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// DatabaseURL selects the Postgres store; when empty the in-memory
	// store is used instead.
	DatabaseURL string
	// CountriesBaseURL is the base of the RestCountries-compatible API used
	// for demonym enrichment.
	CountriesBaseURL string
	// CountriesTimeout bounds a single enrichment lookup so a slow third
	// party cannot hang a write.
	CountriesTimeout time.Duration
	// KafkaBrokers enables lifecycle event publishing when non-empty.
	KafkaBrokers []string
	KafkaTopic   string
	LogLevel     string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:             envOr("CLIENTELE_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("CLIENTELE_DATABASE_URL"),
		CountriesBaseURL: envOr("CLIENTELE_COUNTRIES_BASE_URL", "https://restcountries.com/v3.1"),
		CountriesTimeout: envDurationOr("CLIENTELE_COUNTRIES_TIMEOUT", 5*time.Second),
		KafkaTopic:       envOr("CLIENTELE_KAFKA_TOPIC", "clientele.client-events"),
		LogLevel:         envOr("CLIENTELE_LOG_LEVEL", "info"),
	}
	if brokers := os.Getenv("CLIENTELE_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = platformstrings.DedupeAndTrim(strings.Split(brokers, ","))
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
