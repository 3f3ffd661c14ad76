package config

import (
	"os"
	"strconv"
	"strings"

	"pdfsmarttools/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	DatabasePath   string
	LogLevel       string
	limitOverrides map[domain.FeatureKey]int
}

// NewConfig creates a new configuration instance with default values.
// Per-feature daily limits can be overridden with QUOTA_LIMIT_<FEATURE>
// (e.g. QUOTA_LIMIT_MERGE=10).
func NewConfig() domain.Config {
	overrides := make(map[domain.FeatureKey]int)
	for _, feature := range domain.AllFeatures() {
		key := "QUOTA_LIMIT_" + strings.ToUpper(string(feature))
		if value := os.Getenv(key); value != "" {
			if limit, err := strconv.Atoi(value); err == nil && limit >= 0 {
				overrides[feature] = limit
			}
		}
	}

	return &AppConfig{
		DatabasePath:   getEnvOrDefault("ENGINE_DB_PATH", "./engine.db"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		limitOverrides: overrides,
	}
}

// GetDatabasePath returns the engine database path
func (c *AppConfig) GetDatabasePath() string {
	return c.DatabasePath
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// DailyLimitOverride returns the configured limit override for a feature.
func (c *AppConfig) DailyLimitOverride(feature domain.FeatureKey) (int, bool) {
	limit, ok := c.limitOverrides[feature]
	return limit, ok
}

// Helper function for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
