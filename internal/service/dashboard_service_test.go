package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	"github.com/nunukkam/admin-portal-api/internal/repository"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type mockDashboardRepo struct {
	summary *models.DashboardSummary
	calls   int
}

func (m *mockDashboardRepo) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	m.calls++
	cp := *m.summary
	return &cp, nil
}

type mapCache struct {
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (m *mapCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func TestDashboardSummaryCachesResult(t *testing.T) {
	repo := &mockDashboardRepo{summary: &models.DashboardSummary{Colleges: 4, Courses: 7}}
	cache := newMapCache()
	svc := NewDashboardService(repo, cache, nil, time.Minute, zap.NewNop())

	first, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 4, first.Colleges)
	assert.Equal(t, 1, repo.calls)

	second, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, second.Courses)
	assert.Equal(t, 1, repo.calls)
}

func TestDashboardInvalidateDropsCache(t *testing.T) {
	repo := &mockDashboardRepo{summary: &models.DashboardSummary{Colleges: 4}}
	cache := newMapCache()
	svc := NewDashboardService(repo, cache, nil, time.Minute, zap.NewNop())

	_, _, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cache.entries, repository.CacheKeyDashboardSummary)

	svc.Invalidate(context.Background())
	assert.NotContains(t, cache.entries, repository.CacheKeyDashboardSummary)

	_, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, repo.calls)
}

func TestDashboardSummaryWithoutCache(t *testing.T) {
	repo := &mockDashboardRepo{summary: &models.DashboardSummary{Students: 120}}
	svc := NewDashboardService(repo, nil, nil, 0, zap.NewNop())

	summary, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 120, summary.Students)
}
