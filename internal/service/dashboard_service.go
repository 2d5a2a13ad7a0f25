package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	"github.com/nunukkam/admin-portal-api/internal/repository"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type dashboardRepository interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DashboardService serves the landing-screen counters, cached in Redis for
// a short TTL so the dashboard does not hammer the aggregate query.
type DashboardService struct {
	repo    dashboardRepository
	cache   summaryCache
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewDashboardService constructs a DashboardService. The metrics service is
// optional and records cache hit ratios when present.
func NewDashboardService(repo dashboardRepository, cache summaryCache, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DashboardService{repo: repo, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// Summary returns the counter set, from cache when fresh. The second return
// reports whether the response was served from cache.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, bool, error) {
	if s.cache != nil {
		var cached models.DashboardSummary
		err := s.cache.Get(ctx, repository.CacheKeyDashboardSummary, &cached)
		if err == nil {
			s.recordCache(true)
			return &cached, true, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		s.recordCache(false)
	}

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute dashboard summary")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, repository.CacheKeyDashboardSummary, summary, s.ttl); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *DashboardService) recordCache(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit)
	}
}

// Invalidate drops the cached counters. Write paths call this after
// mutations that change the numbers.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, repository.CacheKeyDashboardSummary); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
