// Demo driver for the operation lifecycle engine. Runs one simulated
// operation end to end: admission, progress ticks, consumption. Ctrl-C while
// the run is in flight exercises cooperative cancellation.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pdfsmarttools/internal/config"
	"pdfsmarttools/internal/domain"
)

// simulatedBackend emits one tick per step with a fixed delay, standing in
// for the native processing backend.
type simulatedBackend struct {
	steps int
	delay time.Duration
}

func (b *simulatedBackend) Execute(ctx context.Context, feature domain.FeatureKey, input domain.BackendInput, sink domain.ProgressSink) (*domain.RunOutput, error) {
	for step := 1; step <= b.steps; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(b.delay):
		}
		sink(domain.BackendTick{
			CurrentItem: step,
			TotalItems:  b.steps,
			Status:      fmt.Sprintf("processing step %d of %d", step, b.steps),
		})
	}
	return &domain.RunOutput{PageCount: b.steps}, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("failed to initialize engine: %v", err)
	}
	defer container.Close()

	feature := domain.FeatureMerge
	privileged := false

	container.Logger.Info("remaining quota before run",
		"feature", feature,
		"remaining", container.QuotaGate.Remaining(feature, privileged))

	supervisor := container.NewSupervisor(&simulatedBackend{steps: 10, delay: 300 * time.Millisecond})

	// Ctrl-C cancels the in-flight run instead of killing the process.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		container.Logger.Info("cancellation requested", "run_id", supervisor.ID())
		supervisor.Cancel()
	}()

	output, err := supervisor.Start(context.Background(), feature, privileged, domain.BackendInput{},
		func(p domain.RunProgress) {
			container.Logger.Info("progress",
				"percent", p.Percent,
				"status", p.Status,
				"eta_ms", p.EstimatedRemainingMs)
		})
	if err != nil {
		container.Logger.Error("run did not complete", err, "state", supervisor.State())
		os.Exit(1)
	}

	container.Logger.Info("run finished",
		"state", supervisor.State(),
		"pages", output.PageCount,
		"remaining", container.QuotaGate.Remaining(feature, privileged))
}
