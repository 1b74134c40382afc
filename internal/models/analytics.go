package models

import (
	"encoding/json"
	"time"
)

// AnalyticsCache holds a cached real-stats reply for a seller
type AnalyticsCache struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CacheKey  string          `gorm:"not null;index:idx_analytics_cache_key_seller" json:"cache_key"`
	SellerID  string          `gorm:"size:64;not null;index:idx_analytics_cache_key_seller" json:"seller_id"`
	Data      json.RawMessage `gorm:"type:jsonb;not null" json:"data"`
	ExpiresAt time.Time       `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for AnalyticsCache
func (AnalyticsCache) TableName() string {
	return "analytics_cache"
}

// IsExpired returns true if the cache entry is past its TTL
func (c *AnalyticsCache) IsExpired() bool {
	return !time.Now().Before(c.ExpiresAt)
}
