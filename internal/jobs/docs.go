// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. CacheRefreshJob - Runs every ten minutes to re-hydrate the courier
// location cache from the store, picking up metadata changes that the
// live position reports do not carry.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(locationCache, courierRepository, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Refresh failures are logged and retried on the next tick; the cache
// keeps serving its last hydrated state in between.
// - Failed job starts leave no jobs running.
package jobs
