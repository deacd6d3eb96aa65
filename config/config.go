package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	MetricsPort    string
	SnapshotPath   string
	CatalogPath    string
	ExtraGuestFee  float64
	SearchCacheTTL time.Duration
}

// Load reads configuration from environment variables with local-development
// defaults. An empty CATALOG_PATH means the embedded fixture catalog.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		SnapshotPath:   getEnv("SNAPSHOT_PATH", "bookings.json"),
		CatalogPath:    getEnv("CATALOG_PATH", ""),
		ExtraGuestFee:  getEnvFloat("EXTRA_GUEST_FEE", 10),
		SearchCacheTTL: getEnvDuration("SEARCH_CACHE_TTL", 10*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
