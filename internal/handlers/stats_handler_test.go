package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedField(t *testing.T, body map[string]interface{}, name string) map[string]interface{} {
	t.Helper()
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	f, ok := fields[name].(map[string]interface{})
	require.True(t, ok, name)
	return f
}

func TestStatsHandler_Show(t *testing.T) {
	env := newTestEnv(fixedProvider{stats: models.RealStats{models.FieldOrders: 12, models.FieldSales: 340.5}})

	w := env.do("POST", "/sellers/seller-42/fake-stats", `{"timeframe":"today","stats":{"orders":500}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do("GET", "/sellers/seller-42/stats?timeframe=today", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(w)
	assert.Equal(t, "today", body["timeframe"])
	assert.Equal(t, map[string]interface{}{"value": 500.0, "source": "override"}, resolvedField(t, body, "orders"))
	assert.Equal(t, map[string]interface{}{"value": 340.5, "source": "real"}, resolvedField(t, body, "sales"))
	assert.Equal(t, 4.5, resolvedField(t, body, "rating")["value"])
}

func TestStatsHandler_ShowDefaultsToToday(t *testing.T) {
	env := newTestEnv(fixedProvider{stats: models.RealStats{}})

	w := env.do("GET", "/sellers/S/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "today", decodeBody(w)["timeframe"])
}

func TestStatsHandler_ShowInvalidTimeframe(t *testing.T) {
	env := newTestEnv(fixedProvider{})

	w := env.do("GET", "/sellers/S/stats?timeframe=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsHandler_ShowDegradesWhenRealStatsFail(t *testing.T) {
	env := newTestEnv(fixedProvider{err: errors.New("timeout")})

	w := env.do("GET", "/sellers/S/stats?timeframe=last7Days", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(w)
	visitors := resolvedField(t, body, "visitors")
	assert.Equal(t, "unavailable", visitors["source"])
	assert.Nil(t, visitors["value"])
	assert.NotEmpty(t, body["warnings"])
}

func TestStatsHandler_Preview(t *testing.T) {
	env := newTestEnv(fixedProvider{stats: models.RealStats{}})

	w := env.do("GET", "/sellers/S/stats/preview", "")
	require.Equal(t, http.StatusOK, w.Code)

	timeframes, ok := decodeBody(w)["timeframes"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, timeframes, 4)
	assert.Contains(t, timeframes, "last30Days")
}

func TestStatsHandler_Export(t *testing.T) {
	env := newTestEnv(fixedProvider{stats: models.RealStats{}})

	w := env.do("GET", "/sellers/S/stats/export?format=csv&timeframe=allTime", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment; filename=seller_S_stats_allTime_"))
	assert.Contains(t, w.Body.String(), "Credit Score")

	w = env.do("GET", "/sellers/S/stats/export?format=doc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
