package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/gnews"
	"github.com/newsphere/newsphere-api/internal/models"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type liveFetcher interface {
	Enabled() bool
	TopHeadlines(ctx context.Context, q gnews.HeadlinesQuery) ([]models.NewsArticle, error)
	Search(ctx context.Context, q gnews.SearchQuery) ([]models.NewsArticle, error)
}

// LiveService proxies the upstream aggregator with a short-lived cache so
// bursts of identical reads cost one upstream call.
type LiveService struct {
	fetcher  liveFetcher
	cache    *redis.Client
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewLiveService constructs the live news service. cache and metrics may
// be nil.
func NewLiveService(fetcher liveFetcher, cache *redis.Client, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *LiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &LiveService{fetcher: fetcher, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// Headlines returns live top headlines, optionally narrowed by category.
func (s *LiveService) Headlines(ctx context.Context, q gnews.HeadlinesQuery) ([]models.NewsArticle, error) {
	if !s.fetcher.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrUpstreamDisabled, "")
	}
	if q.Category != "" && !models.IsValidCategory(q.Category) {
		return nil, appErrors.Validation([]string{"Category must be a known category"})
	}

	key := fmt.Sprintf("live:headlines:%s:%s:%d:%s:%s", q.Category, q.Country, q.Max, q.From, q.To)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	articles, err := s.fetcher.TopHeadlines(ctx, q)
	s.metrics.ObserveUpstream("headlines", err)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	s.store(ctx, key, articles)
	return articles, nil
}

// Search returns live full-text search results.
func (s *LiveService) Search(ctx context.Context, q gnews.SearchQuery) ([]models.NewsArticle, error) {
	if !s.fetcher.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrUpstreamDisabled, "")
	}
	if q.Q == "" {
		return nil, appErrors.Validation([]string{"Search query is required"})
	}

	key := fmt.Sprintf("live:search:%s:%s:%d:%s:%s", q.Q, q.Country, q.Max, q.From, q.To)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	articles, err := s.fetcher.Search(ctx, q)
	s.metrics.ObserveUpstream("search", err)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	s.store(ctx, key, articles)
	return articles, nil
}

func (s *LiveService) fromCache(ctx context.Context, key string) ([]models.NewsArticle, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		s.metrics.RecordCacheLookup(false)
		return nil, false
	}
	var articles []models.NewsArticle
	if err := json.Unmarshal(raw, &articles); err != nil {
		s.metrics.RecordCacheLookup(false)
		return nil, false
	}
	s.metrics.RecordCacheLookup(true)
	return articles, true
}

func (s *LiveService) store(ctx context.Context, key string, articles []models.NewsArticle) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(articles)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("live results not cached", zap.String("key", key), zap.Error(err))
	}
}
