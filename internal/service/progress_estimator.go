package service

import (
	"math"
	"time"

	"pdfsmarttools/internal/domain"
)

// ProgressEstimator turns coarse "N of M items done" ticks into a smooth,
// monotonic progress report with a time estimate. One estimator serves one
// run; if the item total is discovered late or changes, the owner constructs
// a fresh estimator and abandons this one.
type ProgressEstimator struct {
	totalItems int
	startedAt  time.Time
	highWater  int

	now func() time.Time
}

// NewProgressEstimator creates an estimator for a run of totalItems steps.
// Totals below one are treated as one step.
func NewProgressEstimator(totalItems int) *ProgressEstimator {
	if totalItems < 1 {
		totalItems = 1
	}
	e := &ProgressEstimator{
		totalItems: totalItems,
		now:        time.Now,
	}
	e.startedAt = e.now()
	return e
}

// TotalItems returns the step total this estimator was built for.
func (e *ProgressEstimator) TotalItems() int {
	return e.totalItems
}

// Update folds one tick into the estimate and returns the snapshot. Percent
// never regresses: an out-of-order tick below the highest item seen so far is
// clamped up to it. Estimates stay at -1 until the first item completes so no
// misleading ETA is shown before any real progress exists.
func (e *ProgressEstimator) Update(currentItem int, status string) domain.RunProgress {
	if currentItem < e.highWater {
		currentItem = e.highWater
	}
	if currentItem > e.totalItems {
		currentItem = e.totalItems
	}
	e.highWater = currentItem

	elapsed := e.now().Sub(e.startedAt).Milliseconds()

	progress := domain.RunProgress{
		TotalItems:  e.totalItems,
		CurrentItem: currentItem,
		Status:      status,
		StartedAt:   e.startedAt,
		ElapsedMs:   elapsed,
		Percent:     clampPercent(math.Round(float64(currentItem) / float64(e.totalItems) * 100)),
	}

	if currentItem == 0 {
		progress.EstimatedTotalMs = -1
		progress.EstimatedRemainingMs = -1
		return progress
	}

	estimatedTotal := elapsed * int64(e.totalItems) / int64(currentItem)
	progress.EstimatedTotalMs = estimatedTotal

	remaining := estimatedTotal - elapsed
	if remaining < 0 {
		remaining = 0
	}
	progress.EstimatedRemainingMs = remaining

	return progress
}

func clampPercent(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
