package models

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OverrideRecord holds the admin supplied stats for one seller and timeframe
type OverrideRecord struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID    string            `gorm:"size:64;not null;uniqueIndex:idx_seller_fake_stats_seller_timeframe" json:"seller_id"`
	Timeframe   Timeframe         `gorm:"size:16;not null;uniqueIndex:idx_seller_fake_stats_seller_timeframe" json:"timeframe"`
	Stats       datatypes.JSONMap `gorm:"type:jsonb;not null" json:"stats"`
	AdminEdited bool              `gorm:"not null;default:false" json:"admin_edited"`
	UpdatedBy   uint              `json:"updated_by"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TableName specifies the table name for OverrideRecord
func (OverrideRecord) TableName() string {
	return "seller_fake_stats"
}

// BeforeCreate assigns a UUID when the caller did not
func (r *OverrideRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Values decodes the jsonb payload, skipping keys that are not known stat fields
func (r *OverrideRecord) Values() StatValues {
	out := make(StatValues, len(r.Stats))
	for k, v := range r.Stats {
		f, err := ParseStatField(k)
		if err != nil {
			continue
		}
		if n, ok := toFloat(v); ok {
			out[f] = n
		}
	}
	return out
}

// Value returns the override for a single field
func (r *OverrideRecord) Value(f StatField) (float64, bool) {
	if r == nil {
		return 0, false
	}
	v, ok := r.Stats[string(f)]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// StatsJSONMap converts values into the jsonb column representation
func StatsJSONMap(values StatValues) datatypes.JSONMap {
	m := make(datatypes.JSONMap, len(values))
	for f, v := range values {
		m[string(f)] = v
	}
	return m
}

// SortRecords orders records by timeframe display order
func SortRecords(records []OverrideRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timeframe.Order() < records[j].Timeframe.Order()
	})
}

// OverrideRecordResponse is the JSON response format
type OverrideRecordResponse struct {
	Timeframe     Timeframe             `json:"timeframe"`
	Stats         map[StatField]float64 `json:"stats"`
	AdminEdited   bool                  `json:"admin_edited"`
	LastUpdatedAt time.Time             `json:"last_updated_at"`
}

// ToResponse converts OverrideRecord to OverrideRecordResponse
func (r *OverrideRecord) ToResponse() OverrideRecordResponse {
	return OverrideRecordResponse{
		Timeframe:     r.Timeframe,
		Stats:         r.Values(),
		AdminEdited:   r.AdminEdited,
		LastUpdatedAt: r.UpdatedAt,
	}
}
