package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsRepository stores cached real-stats replies
type AnalyticsRepository interface {
	GetCache(ctx context.Context, key, sellerID string) (*models.AnalyticsCache, error)
	SetCache(ctx context.Context, key, sellerID string, data interface{}, ttl time.Duration) error
	CleanExpiredCache(ctx context.Context) (int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetCache(ctx context.Context, key, sellerID string) (*models.AnalyticsCache, error) {
	var cache models.AnalyticsCache
	err := r.db.WithContext(ctx).
		Where("cache_key = ? AND seller_id = ?", key, sellerID).
		Where("expires_at > ?", time.Now()).
		First(&cache).Error
	if err != nil {
		return nil, err
	}
	return &cache, nil
}

func (r *analyticsRepository) SetCache(ctx context.Context, key, sellerID string, data interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	now := time.Now()
	cache := models.AnalyticsCache{
		CacheKey:  key,
		SellerID:  sellerID,
		Data:      jsonData,
		ExpiresAt: now.Add(ttl),
	}

	// Upsert strategy
	var existing models.AnalyticsCache
	err = r.db.WithContext(ctx).
		Where("cache_key = ? AND seller_id = ?", key, sellerID).
		First(&existing).Error
	if err == nil {
		return r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"data":       jsonData,
			"expires_at": cache.ExpiresAt,
			"updated_at": now,
		}).Error
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&cache).Error
}

func (r *analyticsRepository) CleanExpiredCache(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.AnalyticsCache{})
	return result.RowsAffected, result.Error
}
