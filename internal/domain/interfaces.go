package domain

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetDatabasePath() string
	GetLogLevel() string

	// DailyLimitOverride returns an operator-configured daily limit for a
	// feature, replacing the built-in default when present.
	DailyLimitOverride(feature FeatureKey) (int, bool)
}
