package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	FakeStats FakeStatsRepository
	Analytics AnalyticsRepository
	Audit     AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		FakeStats: NewFakeStatsRepository(db),
		Analytics: NewAnalyticsRepository(db),
		Audit:     NewAuditRepository(db),
	}
}
