package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	LogLevel       string
	Port           uint16
	DatabaseUrl    string        // Empty selects the JSON catalog file
	RequestTimeout time.Duration // Deadline for requests that read the catalog
	Catalog        CatalogConfig
	Display        DisplayConfig
	Metrics        MetricsConfig
}

// CatalogConfig controls where product data comes from and how long it is
// cached.
type CatalogConfig struct {
	File      string
	CacheSize int
	CacheTTL  time.Duration
}

// DisplayConfig controls price presentation.
type DisplayConfig struct {
	Locale         string
	CurrencySymbol string
}

type MetricsConfig struct {
	Namespace string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:            getEnv("ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnvInt("PORT", 3000),
		DatabaseUrl:    getEnv("DATABASE_URL", ""),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		Catalog: CatalogConfig{
			File:      getEnv("CATALOG_FILE", "data/catalog.json"),
			CacheSize: int(getEnvInt("CATALOG_CACHE_SIZE", 1024)),
			CacheTTL:  getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Display: DisplayConfig{
			Locale:         getEnv("LOCALE", "en-NG"),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₦"),
		},
		Metrics: MetricsConfig{
			Namespace: getEnv("METRICS_NAMESPACE", "vitrine"),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.DatabaseUrl == "" && cfg.Catalog.File == "" {
		return nil, fmt.Errorf("either DATABASE_URL or CATALOG_FILE must be set")
	}

	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
