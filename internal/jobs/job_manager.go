package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/locations"
	"dispatch/internal/core/ports"
)

// JobManager coordinates the scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cacheRefreshJob *CacheRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	cache *locations.Cache,
	couriers ports.CourierRepository,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		cacheRefreshJob: NewCacheRefreshJob(cache, couriers, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cacheRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start cache refresh job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cacheRefreshJob.Stop()
}
