package domain

import "time"

// RunProgress is a point-in-time snapshot of a running operation, produced by
// the progress estimator on every backend tick. It is created fresh per run
// and never persisted.
type RunProgress struct {
	TotalItems  int    `json:"total_items"`
	CurrentItem int    `json:"current_item"`
	Status      string `json:"status"`

	StartedAt time.Time `json:"started_at"`
	ElapsedMs int64     `json:"elapsed_ms"`

	// Estimates are -1 until at least one item has completed.
	EstimatedRemainingMs int64 `json:"estimated_remaining_ms"`
	EstimatedTotalMs     int64 `json:"estimated_total_ms"`

	// Percent is in [0,100] and never decreases across snapshots of one run,
	// even if the backend reports out-of-order ticks.
	Percent int `json:"percent"`
}

// ProgressFunc receives progress snapshots as a run advances. Called
// synchronously on each backend tick; implementations must not block.
type ProgressFunc func(progress RunProgress)
