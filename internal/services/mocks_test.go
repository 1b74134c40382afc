package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/sjperalta/marketplace-admin-api/internal/repository"
)

// memFakeStatsRepo mimics the jsonb merge of the postgres repository
type memFakeStatsRepo struct {
	mu      sync.Mutex
	records map[string]map[models.Timeframe]*models.OverrideRecord
	err     error
	merges  int
}

func newMemFakeStatsRepo() *memFakeStatsRepo {
	return &memFakeStatsRepo{records: map[string]map[models.Timeframe]*models.OverrideRecord{}}
}

func (m *memFakeStatsRepo) FindBySeller(ctx context.Context, sellerID string) ([]models.OverrideRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.OverrideRecord
	for _, rec := range m.records[sellerID] {
		out = append(out, copyRecord(rec))
	}
	models.SortRecords(out)
	return out, nil
}

func (m *memFakeStatsRepo) Merge(ctx context.Context, sellerID string, timeframe models.Timeframe, values models.StatValues, actorID uint) (*models.OverrideRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.merges++

	bySeller, ok := m.records[sellerID]
	if !ok {
		bySeller = map[models.Timeframe]*models.OverrideRecord{}
		m.records[sellerID] = bySeller
	}

	now := time.Now()
	rec, ok := bySeller[timeframe]
	if !ok {
		rec = &models.OverrideRecord{SellerID: sellerID, Timeframe: timeframe, Stats: models.StatsJSONMap(nil), CreatedAt: now}
		bySeller[timeframe] = rec
	}
	for f, v := range values {
		rec.Stats[string(f)] = v
	}
	rec.AdminEdited = true
	rec.UpdatedBy = actorID
	rec.UpdatedAt = now

	out := copyRecord(rec)
	return &out, nil
}

func (m *memFakeStatsRepo) DeleteBySeller(ctx context.Context, sellerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := int64(len(m.records[sellerID]))
	delete(m.records, sellerID)
	return n, nil
}

func copyRecord(rec *models.OverrideRecord) models.OverrideRecord {
	out := *rec
	out.Stats = models.StatsJSONMap(nil)
	for k, v := range rec.Stats {
		out.Stats[k] = v
	}
	return out
}

type mockAuditRepo struct {
	repository.AuditRepository
	mu      sync.Mutex
	entries []models.AuditLog
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepo) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

// stubProvider returns canned real stats, or fails
type stubProvider struct {
	mu    sync.Mutex
	stats models.RealStats
	err   error
	block bool
	calls int
}

func (p *stubProvider) Compute(ctx context.Context, sellerID string, timeframe models.Timeframe) (models.RealStats, error) {
	p.mu.Lock()
	p.calls++
	block, stats, err := p.block, p.stats, p.err
	p.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	out := make(models.RealStats, len(stats))
	for k, v := range stats {
		out[k] = v
	}
	return out, nil
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

var errCacheMiss = errors.New("record not found")

type mockAnalyticsRepo struct {
	repository.AnalyticsRepository
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
	cleaned int64
}

func newMockAnalyticsRepo() *mockAnalyticsRepo {
	return &mockAnalyticsRepo{entries: map[string][]byte{}}
}

func (m *mockAnalyticsRepo) GetCache(ctx context.Context, key, sellerID string) (*models.AnalyticsCache, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.entries[sellerID+"/"+key]
	if !ok {
		return nil, errCacheMiss
	}
	return &models.AnalyticsCache{CacheKey: key, SellerID: sellerID, Data: data, ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (m *mockAnalyticsRepo) SetCache(ctx context.Context, key, sellerID string, data interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	m.entries[sellerID+"/"+key] = raw
	return nil
}

func (m *mockAnalyticsRepo) CleanExpiredCache(ctx context.Context) (int64, error) {
	return m.cleaned, nil
}
