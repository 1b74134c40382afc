package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/sjperalta/marketplace-admin-api/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultRealStatsTimeout bounds a single call to the real stats provider
const DefaultRealStatsTimeout = 3 * time.Second

// OverrideReader is the read side of the override store
type OverrideReader interface {
	Get(ctx context.Context, sellerID string) ([]models.OverrideRecord, error)
}

// StatsResolver merges overrides over real stats, field by field
type StatsResolver struct {
	overrides OverrideReader
	provider  RealStatsProvider
	timeout   time.Duration
	now       func() time.Time
}

func NewStatsResolver(overrides OverrideReader, provider RealStatsProvider, timeout time.Duration) *StatsResolver {
	if timeout <= 0 {
		timeout = DefaultRealStatsTimeout
	}
	return &StatsResolver{
		overrides: overrides,
		provider:  provider,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Resolve returns the effective stats for one timeframe. A failing real stats
// provider degrades the result instead of failing it.
func (r *StatsResolver) Resolve(ctx context.Context, sellerID string, timeframe models.Timeframe) (*models.EffectiveStats, error) {
	if _, err := models.ParseTimeframe(string(timeframe)); err != nil {
		return nil, err
	}

	records, err := r.overrides.Get(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return r.resolveWith(ctx, sellerID, timeframe, records)
}

// ResolveAll previews every timeframe as the seller would see it
func (r *StatsResolver) ResolveAll(ctx context.Context, sellerID string) (map[models.Timeframe]*models.EffectiveStats, error) {
	records, err := r.overrides.Get(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	timeframes := models.AllTimeframes()
	results := make([]*models.EffectiveStats, len(timeframes))

	g, gctx := errgroup.WithContext(ctx)
	for i, tf := range timeframes {
		g.Go(func() error {
			stats, err := r.resolveWith(gctx, sellerID, tf, records)
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[models.Timeframe]*models.EffectiveStats, len(timeframes))
	for i, tf := range timeframes {
		out[tf] = results[i]
	}
	return out, nil
}

func (r *StatsResolver) resolveWith(ctx context.Context, sellerID string, timeframe models.Timeframe, records []models.OverrideRecord) (*models.EffectiveStats, error) {
	var windowRec, allTimeRec *models.OverrideRecord
	for i := range records {
		if records[i].Timeframe == timeframe {
			windowRec = &records[i]
		}
		if records[i].Timeframe == models.TimeframeAllTime {
			allTimeRec = &records[i]
		}
	}

	realStats, realErr := r.fetchReal(ctx, sellerID, timeframe)
	if realErr != nil && ctx.Err() != nil {
		// caller went away, nothing to degrade to
		return nil, ctx.Err()
	}

	result := &models.EffectiveStats{
		SellerID:   sellerID,
		Timeframe:  timeframe,
		Fields:     make(map[models.StatField]models.EffectiveStat, len(models.AllStatFields())),
		ResolvedAt: r.now(),
	}
	if realErr != nil {
		logger.Warn("[StatsResolver] Real stats unavailable", "seller_id", sellerID, "timeframe", timeframe, "error", realErr)
		result.Warnings = append(result.Warnings, realErr.Error())
	}

	for _, f := range models.AllStatFields() {
		rec := windowRec
		if f.IsTimeframeInvariant() {
			rec = allTimeRec
		}

		if v, ok := rec.Value(f); ok {
			result.Fields[f] = models.EffectiveStat{Value: floatPtr(v), Source: models.SourceOverride}
			continue
		}

		if realErr != nil {
			result.Fields[f] = models.EffectiveStat{Source: models.SourceUnavailable}
			continue
		}

		v, ok := realStats[f]
		if !ok {
			v = f.Default()
		}
		result.Fields[f] = models.EffectiveStat{Value: floatPtr(v), Source: models.SourceReal}
	}

	return result, nil
}

type realStatsResult struct {
	stats models.RealStats
	err   error
}

// fetchReal calls the provider under the resolver timeout. A provider that
// ignores its context is abandoned once the deadline passes.
func (r *StatsResolver) fetchReal(ctx context.Context, sellerID string, timeframe models.Timeframe) (models.RealStats, error) {
	if r.provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrRealStatsUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ch := make(chan realStatsResult, 1)
	go func() {
		stats, err := r.provider.Compute(ctx, sellerID, timeframe)
		ch <- realStatsResult{stats: stats, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			if errors.Is(res.err, ErrRealStatsUnavailable) {
				return nil, res.err
			}
			return nil, fmt.Errorf("%w: %v", ErrRealStatsUnavailable, res.err)
		}
		return res.stats, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrRealStatsUnavailable, ctx.Err())
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
