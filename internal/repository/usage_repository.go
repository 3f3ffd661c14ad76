package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"pdfsmarttools/internal/domain"
)

// usageKey is the single well-known key the daily usage record lives under.
const usageKey = "daily_usage"

// SQLiteUsageStore persists the per-installation daily usage record in a
// local sqlite database. The whole record is stored as one JSON value, so a
// save is a single upsert and a reader never observes a partial record.
type SQLiteUsageStore struct {
	db     *sql.DB
	logger domain.Logger
}

// NewSQLiteUsageStore opens (creating if needed) the engine database at dbPath.
func NewSQLiteUsageStore(dbPath string, logger domain.Logger) (*SQLiteUsageStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open engine database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate engine database: %w", err)
	}

	return &SQLiteUsageStore{db: db, logger: logger}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS engine_kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// Load returns the usage record for today. An absent, corrupt, or stale-dated
// record is replaced wholesale by a fresh record for today, which is persisted
// immediately so later reads in the same day agree. On I/O failure a fresh
// in-memory record is returned together with the error, so the caller can
// fail open.
func (s *SQLiteUsageStore) Load(today string) (*domain.DailyUsageRecord, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM engine_kv WHERE key = ?", usageKey).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return s.resetToFresh(today)
	case err != nil:
		return domain.NewDailyUsageRecord(today), fmt.Errorf("failed to read usage record: %w", err)
	}

	var record domain.DailyUsageRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.Warn("usage record corrupt; replacing with fresh record", "error", err)
		return s.resetToFresh(today)
	}

	if record.Date != today {
		// Date rollover: the stored record belongs to another day.
		return s.resetToFresh(today)
	}

	if record.Counts == nil {
		record.Counts = make(map[domain.FeatureKey]int)
	}
	return &record, nil
}

func (s *SQLiteUsageStore) resetToFresh(today string) (*domain.DailyUsageRecord, error) {
	fresh := domain.NewDailyUsageRecord(today)
	if err := s.Save(fresh); err != nil {
		return fresh, err
	}
	return fresh, nil
}

// Save overwrites the persisted record in one upsert.
func (s *SQLiteUsageStore) Save(record *domain.DailyUsageRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode usage record: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO engine_kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		usageKey, string(raw))
	if err != nil {
		return fmt.Errorf("failed to write usage record: %w", err)
	}
	return nil
}

// Reset deletes the persisted record. Debug and testing use only.
func (s *SQLiteUsageStore) Reset() error {
	_, err := s.db.Exec("DELETE FROM engine_kv WHERE key = ?", usageKey)
	return err
}

// Close closes the underlying database.
func (s *SQLiteUsageStore) Close() error {
	return s.db.Close()
}
