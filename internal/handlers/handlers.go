package handlers

import (
	"github.com/sjperalta/marketplace-admin-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	FakeStats *FakeStatsHandler
	Stats     *StatsHandler
	Audit     *AuditHandler
	Job       *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, db Pinger) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(db),
		FakeStats: NewFakeStatsHandler(svcs.FakeStats),
		Stats:     NewStatsHandler(svcs.Resolver, svcs.Export),
		Audit:     NewAuditHandler(svcs.Audit),
		Job:       NewJobHandler(svcs.Job),
	}
}
