package service

import (
	"sync"

	"pdfsmarttools/internal/domain"
	apperrors "pdfsmarttools/pkg/errors"
)

// QuotaGate is the admission and accounting gate for feature runs. Admission
// is checked before a run starts; consumption is recorded only after a run
// delivered its result. All consumers go through the gate; nothing else
// touches the usage record.
type QuotaGate struct {
	repo     domain.UsageRepository
	policies map[domain.FeatureKey]domain.QuotaPolicy
	logger   domain.Logger

	mu sync.Mutex
	// pending holds consumptions recorded in memory whose persist failed.
	// They count against the limit and are flushed on the next quota call.
	pending map[domain.FeatureKey]int
	today   func() string
}

// NewQuotaGate creates a gate over the given store and policy table.
func NewQuotaGate(repo domain.UsageRepository, policies map[domain.FeatureKey]domain.QuotaPolicy, logger domain.Logger) *QuotaGate {
	return &QuotaGate{
		repo:     repo,
		policies: policies,
		logger:   logger,
		pending:  make(map[domain.FeatureKey]int),
		today:    domain.Today,
	}
}

// Admit reports whether a run of feature may start today. Privileged users
// are always admitted without touching storage. Features without a policy
// entry are denied.
func (g *QuotaGate) Admit(feature domain.FeatureKey, privileged bool) bool {
	if privileged {
		return true
	}

	policy, ok := g.policies[feature]
	if !ok {
		g.logger.Warn("admission denied for unknown feature", "feature", feature)
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	record := g.loadLocked()
	g.flushPendingLocked(record)

	used := record.Count(feature) + g.pending[feature]
	admitted := used < policy.DailyLimit
	if !admitted {
		g.logger.Info("admission denied: daily quota exhausted",
			"feature", feature, "used", used, "limit", policy.DailyLimit)
	}
	return admitted
}

// Remaining returns how many runs of feature are left today, or
// domain.UnlimitedRemaining for privileged users. Unknown features report 0.
func (g *QuotaGate) Remaining(feature domain.FeatureKey, privileged bool) int {
	if privileged {
		return domain.UnlimitedRemaining
	}

	policy, ok := g.policies[feature]
	if !ok {
		return 0
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	record := g.loadLocked()
	used := record.Count(feature) + g.pending[feature]
	if used >= policy.DailyLimit {
		return 0
	}
	return policy.DailyLimit - used
}

// Consume records one successful run of feature. Must be called at most once
// per successful run and never on failure or cancellation. Privileged runs
// are never recorded. When the save fails the consumption is kept in memory,
// counted against the limit, retried on the next quota call, and the error is
// surfaced so the caller can log it; the run itself remains successful.
func (g *QuotaGate) Consume(feature domain.FeatureKey, privileged bool) error {
	if privileged {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	record := g.loadLocked()
	g.flushPendingLocked(record)

	record.Increment(feature)
	if err := g.repo.Save(record); err != nil {
		g.pending[feature]++
		g.logger.Error("quota consume persist failed; keeping in-memory count", err, "feature", feature)
		return apperrors.NewQuotaPersistFailedError(err)
	}

	g.logger.Debug("quota consumed", "feature", feature, "count", record.Count(feature))
	return nil
}

// ResetUsage clears the persisted record and any pending counts. Debug and
// testing use only.
func (g *QuotaGate) ResetUsage() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pending = make(map[domain.FeatureKey]int)
	return g.repo.Reset()
}

// loadLocked loads today's record, degrading to an empty record on storage
// failure so the app stays usable.
func (g *QuotaGate) loadLocked() *domain.DailyUsageRecord {
	record, err := g.repo.Load(g.today())
	if err != nil {
		g.logger.Error("usage record load failed; assuming empty record", err)
		if record == nil {
			record = domain.NewDailyUsageRecord(g.today())
		}
	}
	return record
}

// flushPendingLocked folds previously unpersisted consumptions into record
// and tries to save them. On failure the record is rolled back so counts are
// not double-applied against the still-pending map.
func (g *QuotaGate) flushPendingLocked(record *domain.DailyUsageRecord) {
	if len(g.pending) == 0 {
		return
	}

	for feature, n := range g.pending {
		record.Counts[feature] += n
	}
	if err := g.repo.Save(record); err != nil {
		for feature, n := range g.pending {
			record.Counts[feature] -= n
		}
		g.logger.Warn("pending quota flush failed; will retry", "error", err)
		return
	}

	g.logger.Info("flushed pending quota consumptions", "features", len(g.pending))
	g.pending = make(map[domain.FeatureKey]int)
}
