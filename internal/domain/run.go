package domain

import "context"

// RunState is the lifecycle state of one operation run. Terminal states are
// final: a new run requires a new supervisor.
type RunState string

const (
	RunStateIdle      RunState = "idle"
	RunStateAdmitted  RunState = "admitted"
	RunStateRunning   RunState = "running"
	RunStateCompleted RunState = "completed"
	RunStateFailed    RunState = "failed"
	RunStateCancelled RunState = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s RunState) Terminal() bool {
	switch s {
	case RunStateCompleted, RunStateFailed, RunStateCancelled:
		return true
	}
	return false
}

// BackendInput carries the work description for one run. The engine treats it
// as opaque except for Plan, which is validated before the backend is started.
type BackendInput struct {
	InputPaths []string           `json:"input_paths"`
	OutputPath string             `json:"output_path,omitempty"`
	Password   string             `json:"-"`
	Plan       *PageOperationPlan `json:"plan,omitempty"`
	Options    map[string]string  `json:"options,omitempty"`
}

// RunOutput is the final result of a successful run.
type RunOutput struct {
	OutputPaths  []string `json:"output_paths,omitempty"`
	PageCount    int      `json:"page_count,omitempty"`
	Text         string   `json:"text,omitempty"` // recognized text, when the feature produces it
	BytesWritten int64    `json:"bytes_written,omitempty"`
}

// BackendTick is one discrete progress update emitted by the backend.
// CurrentItem is expected to be non-decreasing within a run; TotalItems may
// only become known after the backend has opened the document.
type BackendTick struct {
	CurrentItem int
	TotalItems  int
	Status      string
}

// ProgressSink receives backend ticks during execution.
type ProgressSink func(tick BackendTick)

// Backend executes the actual document transformation for one run. The
// engine requires that a backend observe ctx promptly and, on any non-success
// outcome, leave no persisted output artifact behind; quota accounting relies
// on that guarantee.
type Backend interface {
	Execute(ctx context.Context, feature FeatureKey, input BackendInput, sink ProgressSink) (*RunOutput, error)
}
