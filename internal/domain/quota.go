package domain

import "time"

// UsageDateLayout is the calendar-date format of the persisted usage record.
const UsageDateLayout = "2006-01-02"

// UnlimitedRemaining is the sentinel returned by remaining-quota queries for
// privileged users, who have no daily cap.
const UnlimitedRemaining = -1

// Today returns the current local calendar date in the stored format.
func Today() string {
	return time.Now().Format(UsageDateLayout)
}

// DailyUsageRecord tracks how many times each feature was successfully
// consumed on Date. A record whose date differs from today is replaced
// wholesale on load; there is no per-feature partial reset.
type DailyUsageRecord struct {
	Date   string             `json:"date"` // YYYY-MM-DD
	Counts map[FeatureKey]int `json:"counts"`
}

// NewDailyUsageRecord returns an empty record for the given date.
func NewDailyUsageRecord(date string) *DailyUsageRecord {
	return &DailyUsageRecord{
		Date:   date,
		Counts: make(map[FeatureKey]int),
	}
}

// Count returns the consumption count for a feature, defaulting to zero.
func (r *DailyUsageRecord) Count(feature FeatureKey) int {
	return r.Counts[feature]
}

// Increment records one successful consumption of a feature.
func (r *DailyUsageRecord) Increment(feature FeatureKey) {
	if r.Counts == nil {
		r.Counts = make(map[FeatureKey]int)
	}
	r.Counts[feature]++
}

// Clone returns a deep copy. The store hands out copies so callers can never
// mutate the persisted record directly.
func (r *DailyUsageRecord) Clone() *DailyUsageRecord {
	counts := make(map[FeatureKey]int, len(r.Counts))
	for feature, count := range r.Counts {
		counts[feature] = count
	}
	return &DailyUsageRecord{Date: r.Date, Counts: counts}
}

// UsageRepository persists the single per-installation daily usage record.
type UsageRepository interface {
	// Load returns the record for today. If no record exists, or the stored
	// record is for a different date, a fresh record for today is returned
	// and persisted immediately. A non-nil record is returned even on I/O
	// failure so admission decisions can degrade to an empty record.
	Load(today string) (*DailyUsageRecord, error)

	// Save overwrites the persisted record. The write is atomic: a
	// concurrent or subsequent Load never observes a partial record.
	Save(record *DailyUsageRecord) error

	// Reset deletes the persisted record. Debug and testing use only.
	Reset() error

	Close() error
}
