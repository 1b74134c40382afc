package services

import (
	"context"
	"time"

	"github.com/sjperalta/marketplace-admin-api/internal/jobs"
	"github.com/sjperalta/marketplace-admin-api/pkg/logger"
)

// CacheCleanupInterval is how often expired real-stats cache rows are purged
const CacheCleanupInterval = 15 * time.Minute

type JobService struct {
	worker *jobs.Worker
}

func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{
		worker: worker,
	}
}

// ScheduleMaintenance registers the recurring jobs of the stats subsystem
func (s *JobService) ScheduleMaintenance(realStats *CachedRealStatsProvider) {
	if realStats == nil {
		return
	}
	s.worker.ScheduleEvery(CacheCleanupInterval, func(ctx context.Context) error {
		logger.Info("[Job] Cleaning expired real stats cache...")
		return realStats.CleanExpired(ctx)
	})
	logger.Info("Scheduled recurring jobs")
}

func (s *JobService) GetStatus() map[string]interface{} {
	stats := s.worker.GetStats()
	return map[string]interface{}{
		"active_jobs":    stats.ActiveJobs,
		"completed_jobs": stats.CompletedJobs,
		"failed_jobs":    stats.FailedJobs,
		"queue_length":   stats.QueueLength,
	}
}
