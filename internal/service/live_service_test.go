package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/gnews"
	"github.com/newsphere/newsphere-api/internal/models"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type stubFetcher struct {
	enabled   bool
	headlines []models.NewsArticle
	results   []models.NewsArticle
	err       error
	calls     int
}

func (f *stubFetcher) Enabled() bool { return f.enabled }

func (f *stubFetcher) TopHeadlines(ctx context.Context, q gnews.HeadlinesQuery) ([]models.NewsArticle, error) {
	f.calls++
	return f.headlines, f.err
}

func (f *stubFetcher) Search(ctx context.Context, q gnews.SearchQuery) ([]models.NewsArticle, error) {
	f.calls++
	return f.results, f.err
}

func TestLiveServiceDisabledWithoutKey(t *testing.T) {
	svc := NewLiveService(&stubFetcher{enabled: false}, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Headlines(context.Background(), gnews.HeadlinesQuery{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstreamDisabled.Code, appErrors.FromError(err).Code)

	_, err = svc.Search(context.Background(), gnews.SearchQuery{Q: "ai"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstreamDisabled.Code, appErrors.FromError(err).Code)
}

func TestLiveServiceHeadlines(t *testing.T) {
	fetcher := &stubFetcher{enabled: true, headlines: []models.NewsArticle{{ID: "gnews-1", Title: "Live"}}}
	svc := NewLiveService(fetcher, nil, time.Minute, nil, zap.NewNop())

	articles, err := svc.Headlines(context.Background(), gnews.HeadlinesQuery{Category: "Technology"})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "gnews-1", articles[0].ID)
}

func TestLiveServiceRejectsUnknownCategory(t *testing.T) {
	svc := NewLiveService(&stubFetcher{enabled: true}, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Headlines(context.Background(), gnews.HeadlinesQuery{Category: "Sports"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLiveServiceSearchRequiresQuery(t *testing.T) {
	svc := NewLiveService(&stubFetcher{enabled: true}, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Search(context.Background(), gnews.SearchQuery{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLiveServiceRecordsUpstreamMetrics(t *testing.T) {
	metrics := NewMetricsService()
	fetcher := &stubFetcher{enabled: true, headlines: []models.NewsArticle{{ID: "gnews-1", Title: "Live"}}}
	svc := NewLiveService(fetcher, nil, time.Minute, metrics, zap.NewNop())

	_, err := svc.Headlines(context.Background(), gnews.HeadlinesQuery{})
	require.NoError(t, err)

	fetcher.err = context.DeadlineExceeded
	_, err = svc.Search(context.Background(), gnews.SearchQuery{Q: "ai"})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, readErr := io.ReadAll(rec.Body)
	require.NoError(t, readErr)

	assert.Contains(t, string(body), `upstream_requests_total{operation="headlines",outcome="ok"} 1`)
	assert.Contains(t, string(body), `upstream_requests_total{operation="search",outcome="error"} 1`)
}

func TestLiveServiceWrapsUpstreamFailure(t *testing.T) {
	fetcher := &stubFetcher{enabled: true, err: context.DeadlineExceeded}
	svc := NewLiveService(fetcher, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Search(context.Background(), gnews.SearchQuery{Q: "ai"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
