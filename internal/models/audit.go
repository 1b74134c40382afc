package models

import (
	"time"
)

// Audit actions
const (
	AuditActionFakeStatsUpsert = "fake_stats.upsert"
	AuditActionFakeStatsReset  = "fake_stats.reset"
)

// AuditLog represents an admin action on seller data
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	Entity    string    `gorm:"size:50;not null" json:"entity"` // Seller, ...
	EntityID  string    `gorm:"size:64;index" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"` // JSON payload
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
