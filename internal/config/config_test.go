package config

import (
	"testing"

	"pdfsmarttools/internal/domain"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("ENGINE_DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("QUOTA_LIMIT_MERGE", "")

	cfg := NewConfig()

	if cfg.GetDatabasePath() != "./engine.db" {
		t.Fatalf("expected default database path ./engine.db, got %s", cfg.GetDatabasePath())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if _, ok := cfg.DailyLimitOverride(domain.FeatureMerge); ok {
		t.Fatalf("expected no limit override by default")
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("ENGINE_DB_PATH", "/tmp/test-engine.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("QUOTA_LIMIT_MERGE", "10")
	t.Setenv("QUOTA_LIMIT_OCR", "0")

	cfg := NewConfig()

	if cfg.GetDatabasePath() != "/tmp/test-engine.db" {
		t.Fatalf("expected database path /tmp/test-engine.db, got %s", cfg.GetDatabasePath())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if limit, ok := cfg.DailyLimitOverride(domain.FeatureMerge); !ok || limit != 10 {
		t.Fatalf("expected merge limit override 10, got %d (present=%v)", limit, ok)
	}
	// Zero disables a feature entirely and is a valid override.
	if limit, ok := cfg.DailyLimitOverride(domain.FeatureOCR); !ok || limit != 0 {
		t.Fatalf("expected ocr limit override 0, got %d (present=%v)", limit, ok)
	}
}

func TestNewConfig_IgnoresInvalidOverride(t *testing.T) {
	t.Setenv("QUOTA_LIMIT_MERGE", "lots")
	t.Setenv("QUOTA_LIMIT_OCR", "-3")

	cfg := NewConfig()

	if _, ok := cfg.DailyLimitOverride(domain.FeatureMerge); ok {
		t.Fatalf("expected non-numeric override to be ignored")
	}
	if _, ok := cfg.DailyLimitOverride(domain.FeatureOCR); ok {
		t.Fatalf("expected negative override to be ignored")
	}
}
