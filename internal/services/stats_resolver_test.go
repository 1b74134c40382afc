package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(provider RealStatsProvider) (*StatsResolver, *FakeStatsService) {
	svc, _, _ := newTestFakeStatsService()
	return NewStatsResolver(svc, provider, 50*time.Millisecond), svc
}

func statValue(t *testing.T, st models.EffectiveStat) float64 {
	t.Helper()
	require.NotNil(t, st.Value)
	return *st.Value
}

func TestStatsResolver_OverrideTakesPrecedence(t *testing.T) {
	provider := &stubProvider{stats: models.RealStats{
		models.FieldOrders: 12,
		models.FieldSales:  340.5,
	}}
	resolver, svc := newTestResolver(provider)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testAdmin, "S", models.TimeframeToday, map[string]float64{"orders": 500})
	require.NoError(t, err)

	stats, err := resolver.Resolve(ctx, "S", models.TimeframeToday)
	require.NoError(t, err)

	orders := stats.Get(models.FieldOrders)
	assert.Equal(t, 500.0, statValue(t, orders))
	assert.Equal(t, models.SourceOverride, orders.Source)

	sales := stats.Get(models.FieldSales)
	assert.Equal(t, 340.5, statValue(t, sales))
	assert.Equal(t, models.SourceReal, sales.Source)

	assert.Empty(t, stats.Warnings)
	assert.Equal(t, 1, provider.callCount(), "real stats are fetched even with overrides")
}

func TestStatsResolver_OverrideOnlyAppliesToItsTimeframe(t *testing.T) {
	provider := &stubProvider{stats: models.RealStats{models.FieldOrders: 12}}
	resolver, svc := newTestResolver(provider)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testAdmin, "S", models.TimeframeToday, map[string]float64{"orders": 500})
	require.NoError(t, err)

	stats, err := resolver.Resolve(ctx, "S", models.TimeframeLast7Days)
	require.NoError(t, err)
	assert.Equal(t, 12.0, statValue(t, stats.Get(models.FieldOrders)))
	assert.Equal(t, models.SourceReal, stats.Get(models.FieldOrders).Source)
}

func TestStatsResolver_InvariantFieldsReadAllTime(t *testing.T) {
	provider := &stubProvider{stats: models.RealStats{models.FieldRating: 3.9}}
	resolver, svc := newTestResolver(provider)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testAdmin, "S", models.TimeframeAllTime, map[string]float64{"rating": 4.8, "followers": 2500})
	require.NoError(t, err)
	// a rating stored against a windowed timeframe is ignored for display
	_, err = svc.Upsert(ctx, testAdmin, "S", models.TimeframeToday, map[string]float64{"rating": 2.0})
	require.NoError(t, err)

	for _, tf := range models.AllTimeframes() {
		stats, err := resolver.Resolve(ctx, "S", tf)
		require.NoError(t, err)

		rating := stats.Get(models.FieldRating)
		assert.Equal(t, 4.8, statValue(t, rating), tf)
		assert.Equal(t, models.SourceOverride, rating.Source, tf)

		followers := stats.Get(models.FieldFollowers)
		assert.Equal(t, 2500.0, statValue(t, followers), tf)
	}
}

func TestStatsResolver_Defaults(t *testing.T) {
	resolver, _ := newTestResolver(&stubProvider{stats: models.RealStats{}})

	stats, err := resolver.Resolve(context.Background(), "S", models.TimeframeToday)
	require.NoError(t, err)

	assert.Equal(t, 0.0, statValue(t, stats.Get(models.FieldOrders)))
	assert.Equal(t, 0.0, statValue(t, stats.Get(models.FieldSales)))
	assert.Equal(t, 4.5, statValue(t, stats.Get(models.FieldRating)))
	assert.Equal(t, 750.0, statValue(t, stats.Get(models.FieldCreditScore)))
	assert.Len(t, stats.Fields, len(models.AllStatFields()))
	assert.False(t, stats.HasOverrides())
}

func TestStatsResolver_ProviderFailureDegrades(t *testing.T) {
	provider := &stubProvider{err: errors.New("analytics service returned 502")}
	resolver, svc := newTestResolver(provider)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testAdmin, "S", models.TimeframeToday, map[string]float64{"orders": 40, "sales": 800})
	require.NoError(t, err)

	stats, err := resolver.Resolve(ctx, "S", models.TimeframeToday)
	require.NoError(t, err)

	visitors := stats.Get(models.FieldVisitors)
	assert.Equal(t, models.SourceUnavailable, visitors.Source)
	assert.Nil(t, visitors.Value)

	assert.Equal(t, 40.0, statValue(t, stats.Get(models.FieldOrders)))
	assert.Equal(t, models.SourceOverride, stats.Get(models.FieldSales).Source)

	require.Len(t, stats.Warnings, 1)
	assert.Contains(t, stats.Warnings[0], ErrRealStatsUnavailable.Error())
}

func TestStatsResolver_ProviderTimeout(t *testing.T) {
	provider := &stubProvider{block: true}
	resolver, _ := newTestResolver(provider)

	start := time.Now()
	stats, err := resolver.Resolve(context.Background(), "S", models.TimeframeToday)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	for _, f := range models.AllStatFields() {
		assert.Equal(t, models.SourceUnavailable, stats.Get(f).Source, f)
	}
	assert.NotEmpty(t, stats.Warnings)
}

func TestStatsResolver_NoProvider(t *testing.T) {
	resolver, svc := newTestResolver(nil)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testAdmin, "S", models.TimeframeAllTime, map[string]float64{"creditScore": 810})
	require.NoError(t, err)

	stats, err := resolver.Resolve(ctx, "S", models.TimeframeToday)
	require.NoError(t, err)
	assert.Equal(t, 810.0, statValue(t, stats.Get(models.FieldCreditScore)))
	assert.Equal(t, models.SourceUnavailable, stats.Get(models.FieldOrders).Source)
}

func TestStatsResolver_StorageFailureIsReturned(t *testing.T) {
	repo := newMemFakeStatsRepo()
	repo.err = errors.New("connection reset")
	resolver := NewStatsResolver(NewFakeStatsService(repo, nil), &stubProvider{}, time.Second)

	_, err := resolver.Resolve(context.Background(), "S", models.TimeframeToday)
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
}

func TestStatsResolver_InvalidTimeframe(t *testing.T) {
	resolver, _ := newTestResolver(&stubProvider{})

	_, err := resolver.Resolve(context.Background(), "S", models.Timeframe("thisYear"))
	assert.True(t, errors.Is(err, models.ErrInvalidTimeframe))
}

func TestStatsResolver_ResolveAll(t *testing.T) {
	provider := &stubProvider{stats: models.RealStats{models.FieldOrders: 3}}
	resolver, svc := newTestResolver(provider)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testAdmin, "S", models.TimeframeLast30Days, map[string]float64{"orders": 900})
	require.NoError(t, err)

	all, err := resolver.ResolveAll(ctx, "S")
	require.NoError(t, err)
	require.Len(t, all, 4)

	assert.Equal(t, 900.0, statValue(t, all[models.TimeframeLast30Days].Get(models.FieldOrders)))
	assert.Equal(t, 3.0, statValue(t, all[models.TimeframeToday].Get(models.FieldOrders)))
	for tf, stats := range all {
		assert.Equal(t, tf, stats.Timeframe)
	}
	assert.Equal(t, 4, provider.callCount())
}

func TestStatsResolver_ResolveAllCanceled(t *testing.T) {
	resolver, _ := newTestResolver(&stubProvider{block: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.ResolveAll(ctx, "S")
	assert.ErrorIs(t, err, context.Canceled)
}
