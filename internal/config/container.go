package config

import (
	"pdfsmarttools/internal/domain"
	"pdfsmarttools/internal/repository"
	"pdfsmarttools/internal/service"
	"pdfsmarttools/pkg/logger"
)

// Container holds all engine dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	UsageRepository domain.UsageRepository
	QuotaGate       *service.QuotaGate
	Planner         *service.PagePlanner
	PDFBackend      *service.PDFBackend
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	usageRepo, err := repository.NewSQLiteUsageStore(config.GetDatabasePath(), appLogger)
	if err != nil {
		return nil, err
	}

	// Built-in policy table with operator overrides applied.
	policies := domain.DefaultPolicies()
	for feature, policy := range policies {
		if limit, ok := config.DailyLimitOverride(feature); ok {
			policy.DailyLimit = limit
			policies[feature] = policy
		}
	}

	return &Container{
		Config:          config,
		Logger:          appLogger,
		UsageRepository: usageRepo,
		QuotaGate:       service.NewQuotaGate(usageRepo, policies, appLogger),
		Planner:         service.NewPagePlanner(appLogger),
		PDFBackend:      service.NewPDFBackend(appLogger),
	}, nil
}

// NewSupervisor creates a single-use supervisor for one run on the given
// backend. Passing nil uses the shipped PDF backend.
func (c *Container) NewSupervisor(backend domain.Backend) *service.OperationSupervisor {
	if backend == nil {
		backend = c.PDFBackend
	}
	return service.NewOperationSupervisor(c.QuotaGate, c.Planner, backend, c.Logger)
}

// Close releases the container's resources.
func (c *Container) Close() error {
	return c.UsageRepository.Close()
}
