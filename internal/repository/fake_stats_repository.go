package repository

import (
	"context"
	"time"

	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FakeStatsRepository defines data access for seller stat overrides
type FakeStatsRepository interface {
	FindBySeller(ctx context.Context, sellerID string) ([]models.OverrideRecord, error)
	Merge(ctx context.Context, sellerID string, timeframe models.Timeframe, values models.StatValues, actorID uint) (*models.OverrideRecord, error)
	DeleteBySeller(ctx context.Context, sellerID string) (int64, error)
}

type fakeStatsRepository struct {
	db *gorm.DB
}

// NewFakeStatsRepository creates a new fake stats repository
func NewFakeStatsRepository(db *gorm.DB) FakeStatsRepository {
	return &fakeStatsRepository{db: db}
}

func (r *fakeStatsRepository) FindBySeller(ctx context.Context, sellerID string) ([]models.OverrideRecord, error) {
	records := []models.OverrideRecord{}
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	models.SortRecords(records)
	return records, nil
}

// Merge upserts the record for (sellerID, timeframe). Existing keys in the jsonb
// payload are overwritten by values, others are kept, all in one statement.
func (r *fakeStatsRepository) Merge(ctx context.Context, sellerID string, timeframe models.Timeframe, values models.StatValues, actorID uint) (*models.OverrideRecord, error) {
	now := time.Now()
	record := models.OverrideRecord{
		SellerID:    sellerID,
		Timeframe:   timeframe,
		Stats:       models.StatsJSONMap(values),
		AdminEdited: true,
		UpdatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "seller_id"}, {Name: "timeframe"}},
				DoUpdates: clause.Set{
					{Column: clause.Column{Name: "stats"}, Value: gorm.Expr("seller_fake_stats.stats || EXCLUDED.stats")},
					{Column: clause.Column{Name: "admin_edited"}, Value: true},
					{Column: clause.Column{Name: "updated_by"}, Value: actorID},
					{Column: clause.Column{Name: "updated_at"}, Value: now},
				},
			},
			clause.Returning{},
		).
		Create(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *fakeStatsRepository) DeleteBySeller(ctx context.Context, sellerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Delete(&models.OverrideRecord{})
	return result.RowsAffected, result.Error
}
