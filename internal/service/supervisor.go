package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"pdfsmarttools/internal/domain"
	apperrors "pdfsmarttools/pkg/errors"
)

// OperationSupervisor orchestrates exactly one run of a gated feature:
// admission, backend execution with progress estimation, and consume-on-
// success accounting. A supervisor is single-use; once the run reaches a
// terminal state a new run requires a new supervisor.
type OperationSupervisor struct {
	gate    *QuotaGate
	planner *PagePlanner
	backend domain.Backend
	logger  domain.Logger

	mu     sync.Mutex
	id     string
	state  domain.RunState
	cancel context.CancelFunc
}

// NewOperationSupervisor creates a supervisor for a single run.
func NewOperationSupervisor(gate *QuotaGate, planner *PagePlanner, backend domain.Backend, logger domain.Logger) *OperationSupervisor {
	return &OperationSupervisor{
		gate:    gate,
		planner: planner,
		backend: backend,
		logger:  logger,
		id:      uuid.NewString(),
		state:   domain.RunStateIdle,
	}
}

// ID returns the run identifier.
func (s *OperationSupervisor) ID() string {
	return s.id
}

// State returns the current run state.
func (s *OperationSupervisor) State() domain.RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start drives the run to a terminal state and returns its result. It blocks
// until the backend finishes, fails, or is cancelled. Quota is consumed
// exactly once, and only when the backend succeeded; on failure or
// cancellation nothing is persisted and the backend discards partial output.
func (s *OperationSupervisor) Start(ctx context.Context, feature domain.FeatureKey, privileged bool, input domain.BackendInput, onProgress domain.ProgressFunc) (*domain.RunOutput, error) {
	s.mu.Lock()
	if s.state != domain.RunStateIdle {
		s.mu.Unlock()
		return nil, domain.ErrRunAlreadyStarted
	}

	if !s.gate.Admit(feature, privileged) {
		s.state = domain.RunStateFailed
		s.mu.Unlock()
		s.logger.Info("run rejected at admission", "run_id", s.id, "feature", feature)
		return nil, apperrors.NewQuotaExceededError(string(feature))
	}
	s.state = domain.RunStateAdmitted

	if input.Plan != nil {
		if err := s.planner.Validate(input.Plan); err != nil {
			s.state = domain.RunStateFailed
			s.mu.Unlock()
			s.logger.Warn("run rejected: invalid page plan", "run_id", s.id, "feature", feature, "reason", err)
			return nil, apperrors.NewPlanInvalidError(err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = domain.RunStateRunning
	s.mu.Unlock()
	defer cancel()

	s.logger.Info("run started", "run_id", s.id, "feature", feature, "privileged", privileged)

	// The estimator is created on the first tick, once the backend reveals
	// the true step total, and replaced wholesale if that total changes.
	var estimator *ProgressEstimator
	sink := func(tick domain.BackendTick) {
		total := tick.TotalItems
		if total < 1 {
			total = 1
		}
		if estimator == nil || estimator.TotalItems() != total {
			estimator = NewProgressEstimator(total)
		}
		snapshot := estimator.Update(tick.CurrentItem, tick.Status)
		if onProgress != nil {
			onProgress(snapshot)
		}
	}

	output, err := s.backend.Execute(runCtx, feature, input, sink)
	if err != nil {
		if runCtx.Err() != nil || errors.Is(err, context.Canceled) {
			s.setState(domain.RunStateCancelled)
			s.logger.Info("run cancelled", "run_id", s.id, "feature", feature)
			return nil, apperrors.NewCancelledError()
		}
		s.setState(domain.RunStateFailed)
		s.logger.Error("run failed in backend", err, "run_id", s.id, "feature", feature)
		return nil, apperrors.NewBackendFailedError(err)
	}

	// The work was delivered; a persist failure must not take it away.
	if consumeErr := s.gate.Consume(feature, privileged); consumeErr != nil {
		s.logger.Warn("run succeeded but quota persist failed", "run_id", s.id, "feature", feature, "error", consumeErr)
	}

	s.setState(domain.RunStateCompleted)
	s.logger.Info("run completed", "run_id", s.id, "feature", feature)
	return output, nil
}

// Cancel requests cooperative cancellation of a running backend. The backend
// observes the signal between steps; there is no forced preemption. Calling
// Cancel in any other state is a no-op.
func (s *OperationSupervisor) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.RunStateRunning && s.cancel != nil {
		s.cancel()
	}
}

func (s *OperationSupervisor) setState(state domain.RunState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
