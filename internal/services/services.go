package services

import (
	"github.com/sjperalta/marketplace-admin-api/internal/config"
	"github.com/sjperalta/marketplace-admin-api/internal/jobs"
	"github.com/sjperalta/marketplace-admin-api/internal/repository"
	"github.com/sjperalta/marketplace-admin-api/pkg/logger"
)

// Services holds all service instances
type Services struct {
	FakeStats *FakeStatsService
	Resolver  *StatsResolver
	RealStats *CachedRealStatsProvider
	Export    *ExportService
	Audit     *AuditService
	Job       *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit, worker)
	fakeStatsSvc := NewFakeStatsService(repos.FakeStats, auditSvc)

	var provider RealStatsProvider
	var cached *CachedRealStatsProvider
	if cfg.RealStatsURL != "" {
		httpProvider := NewHTTPRealStatsProvider(cfg.RealStatsURL, cfg.RealStatsToken, cfg.RealStatsTimeout)
		cached = NewCachedRealStatsProvider(httpProvider, repos.Analytics, cfg.RealStatsCacheTTL)
		provider = cached
	} else {
		// Every non-overridden field resolves as unavailable
		logger.Warn("REAL_STATS_URL not set: real seller stats are disabled")
	}

	resolver := NewStatsResolver(fakeStatsSvc, provider, cfg.RealStatsTimeout)

	return &Services{
		FakeStats: fakeStatsSvc,
		Resolver:  resolver,
		RealStats: cached,
		Export:    NewExportService(resolver),
		Audit:     auditSvc,
		Job:       NewJobService(worker),
	}
}
