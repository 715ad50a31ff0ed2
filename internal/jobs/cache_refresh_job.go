package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/locations"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// CacheRefreshJob periodically re-hydrates the courier location cache
// from the store. Position reports keep the cache current in between;
// the refresh picks up courier metadata changes such as renames, role
// changes and deactivations.
type CacheRefreshJob struct {
	cache    *locations.Cache
	couriers ports.CourierRepository
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCacheRefreshJob creates the refresh job. It does not start it.
func NewCacheRefreshJob(
	cache *locations.Cache,
	couriers ports.CourierRepository,
	logger *slog.Logger,
) *CacheRefreshJob {
	return &CacheRefreshJob{
		cache:    cache,
		couriers: couriers,
		cron:     cron.New(),
		logger:   logger.With("component", "cache_refresh_job"),
	}
}

// Start schedules the refresh every ten minutes.
func (j *CacheRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * *", func() {
		ctx := context.Background()
		if err := j.cache.Hydrate(ctx, j.couriers); err != nil {
			j.logger.ErrorContext(ctx, "Location cache refresh failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location cache refresh job started (running every 10 minutes)")
	return nil
}

// Stop stops the refresh job.
func (j *CacheRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location cache refresh job stopped")
}
