package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/sjperalta/marketplace-admin-api/internal/repository"
	"github.com/sjperalta/marketplace-admin-api/internal/services"
)

type mockFakeStatsRepo struct {
	repository.FakeStatsRepository
	mu      sync.Mutex
	records map[string]map[models.Timeframe]models.OverrideRecord
	err     error
}

func newMockFakeStatsRepo() *mockFakeStatsRepo {
	return &mockFakeStatsRepo{records: map[string]map[models.Timeframe]models.OverrideRecord{}}
}

func (m *mockFakeStatsRepo) FindBySeller(ctx context.Context, sellerID string) ([]models.OverrideRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.OverrideRecord{}
	for _, rec := range m.records[sellerID] {
		out = append(out, rec)
	}
	models.SortRecords(out)
	return out, nil
}

func (m *mockFakeStatsRepo) Merge(ctx context.Context, sellerID string, timeframe models.Timeframe, values models.StatValues, actorID uint) (*models.OverrideRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.records[sellerID] == nil {
		m.records[sellerID] = map[models.Timeframe]models.OverrideRecord{}
	}
	rec, ok := m.records[sellerID][timeframe]
	if !ok {
		rec = models.OverrideRecord{SellerID: sellerID, Timeframe: timeframe, Stats: models.StatsJSONMap(nil)}
	}
	merged := models.StatsJSONMap(rec.Values())
	for f, v := range values {
		merged[string(f)] = v
	}
	rec.Stats = merged
	rec.AdminEdited = true
	rec.UpdatedBy = actorID
	rec.UpdatedAt = time.Now()
	m.records[sellerID][timeframe] = rec
	return &rec, nil
}

func (m *mockFakeStatsRepo) DeleteBySeller(ctx context.Context, sellerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := int64(len(m.records[sellerID]))
	delete(m.records, sellerID)
	return n, nil
}

type fixedProvider struct {
	stats models.RealStats
	err   error
}

func (p fixedProvider) Compute(ctx context.Context, sellerID string, timeframe models.Timeframe) (models.RealStats, error) {
	return p.stats, p.err
}

type testEnv struct {
	repo   *mockFakeStatsRepo
	router *gin.Engine
}

// newTestEnv wires the stats handlers behind a fake identity taken from X-Test-Role / X-Test-Seller
func newTestEnv(provider services.RealStatsProvider) *testEnv {
	gin.SetMode(gin.TestMode)

	repo := newMockFakeStatsRepo()
	fakeStatsSvc := services.NewFakeStatsService(repo, nil)
	resolver := services.NewStatsResolver(fakeStatsSvc, provider, 50*time.Millisecond)

	fakeStats := NewFakeStatsHandler(fakeStatsSvc)
	stats := NewStatsHandler(resolver, services.NewExportService(resolver))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Set("userRole", c.GetHeader("X-Test-Role"))
		c.Set("sellerID", c.GetHeader("X-Test-Seller"))
		c.Next()
	})
	r.GET("/sellers/:seller_id/fake-stats", fakeStats.Index)
	r.POST("/sellers/:seller_id/fake-stats", fakeStats.Upsert)
	r.DELETE("/sellers/:seller_id/fake-stats", fakeStats.Reset)
	r.GET("/sellers/:seller_id/stats", stats.Show)
	r.GET("/sellers/:seller_id/stats/preview", stats.Preview)
	r.GET("/sellers/:seller_id/stats/export", stats.Export)

	return &testEnv{repo: repo, router: r}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Role", "admin")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func rawStats(s string) map[string]json.RawMessage {
	var out map[string]json.RawMessage
	_ = json.Unmarshal([]byte(s), &out)
	return out
}

func decodeBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

