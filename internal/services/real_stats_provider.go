package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/sjperalta/marketplace-admin-api/internal/repository"
	"github.com/sjperalta/marketplace-admin-api/pkg/logger"
)

// RealStatsProvider computes a seller's actual statistics for a timeframe
type RealStatsProvider interface {
	Compute(ctx context.Context, sellerID string, timeframe models.Timeframe) (models.RealStats, error)
}

// HTTPRealStatsProvider calls the external analytics service
type HTTPRealStatsProvider struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPRealStatsProvider(baseURL, token string, timeout time.Duration) *HTTPRealStatsProvider {
	return &HTTPRealStatsProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type realStatsResponse struct {
	Stats map[string]*float64 `json:"stats"`
}

func (p *HTTPRealStatsProvider) Compute(ctx context.Context, sellerID string, timeframe models.Timeframe) (models.RealStats, error) {
	endpoint := fmt.Sprintf("%s/sellers/%s/stats?timeframe=%s", p.baseURL, url.PathEscape(sellerID), url.QueryEscape(string(timeframe)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRealStatsUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRealStatsUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrRealStatsUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload realStatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRealStatsUnavailable, err)
	}

	stats := make(models.RealStats, len(payload.Stats))
	for name, v := range payload.Stats {
		f, err := models.ParseStatField(name)
		if err != nil || v == nil {
			continue
		}
		stats[f] = *v
	}
	return stats, nil
}

// CachedRealStatsProvider keeps successful replies in the analytics cache for ttl
type CachedRealStatsProvider struct {
	next          RealStatsProvider
	analyticsRepo repository.AnalyticsRepository
	ttl           time.Duration
}

func NewCachedRealStatsProvider(next RealStatsProvider, analyticsRepo repository.AnalyticsRepository, ttl time.Duration) *CachedRealStatsProvider {
	return &CachedRealStatsProvider{next: next, analyticsRepo: analyticsRepo, ttl: ttl}
}

func realStatsCacheKey(timeframe models.Timeframe) string {
	return "real_stats_" + string(timeframe)
}

func (p *CachedRealStatsProvider) Compute(ctx context.Context, sellerID string, timeframe models.Timeframe) (models.RealStats, error) {
	key := realStatsCacheKey(timeframe)

	// Check cache
	if p.ttl > 0 {
		cached, err := p.analyticsRepo.GetCache(ctx, key, sellerID)
		if err == nil && cached != nil && !cached.IsExpired() {
			var stats models.RealStats
			if err := json.Unmarshal(cached.Data, &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := p.next.Compute(ctx, sellerID, timeframe)
	if err != nil {
		return nil, err
	}

	if p.ttl > 0 {
		if err := p.analyticsRepo.SetCache(ctx, key, sellerID, stats, p.ttl); err != nil {
			logger.Warn("[RealStats] Failed to cache stats", "seller_id", sellerID, "timeframe", timeframe, "error", err)
		}
	}
	return stats, nil
}

// CleanExpired removes stale cache rows; scheduled by the worker
func (p *CachedRealStatsProvider) CleanExpired(ctx context.Context) error {
	removed, err := p.analyticsRepo.CleanExpiredCache(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean analytics cache: %w", err)
	}
	logger.Info("[RealStats] Cleaned expired cache entries", "removed", removed)
	return nil
}
