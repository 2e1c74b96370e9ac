package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/export"
)

const dashboardCacheKey = "dashboard:stats"

type newsStatsProvider interface {
	Stats(ctx context.Context) (*models.NewsStats, error)
}

type enquiryStatsProvider interface {
	Stats(ctx context.Context) (*models.EnquiryStats, error)
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardCounters bundles the per-entity counters feeding the overview.
type DashboardCounters struct {
	Blogs      counter
	Pages      counter
	Media      counter
	Categories counter
	Readers    counter
}

// DashboardService aggregates the admin overview and its exports.
type DashboardService struct {
	news      newsStatsProvider
	enquiries enquiryStatsProvider
	counters  DashboardCounters
	cache     *redis.Client
	cacheTTL  time.Duration
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewDashboardService constructs the dashboard service. cache may be nil,
// in which case every call recomputes.
func NewDashboardService(news newsStatsProvider, enquiries enquiryStatsProvider, counters DashboardCounters, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &DashboardService{
		news:      news,
		enquiries: enquiries,
		counters:  counters,
		cache:     cache,
		cacheTTL:  cacheTTL,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// Stats returns the aggregated overview, served from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var cached models.DashboardStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("dashboard stats not cached", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *DashboardService) compute(ctx context.Context) (*models.DashboardStats, error) {
	newsStats, err := s.news.Stats(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	enquiryStats, err := s.enquiries.Stats(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	stats := &models.DashboardStats{News: *newsStats, Enquiries: *enquiryStats}
	for _, c := range []struct {
		counter counter
		dest    *int64
	}{
		{s.counters.Blogs, &stats.Blogs},
		{s.counters.Pages, &stats.Pages},
		{s.counters.Media, &stats.Media},
		{s.counters.Categories, &stats.Categories},
		{s.counters.Readers, &stats.Readers},
	} {
		if c.counter == nil {
			continue
		}
		total, err := c.counter.Count(ctx)
		if err != nil {
			return nil, appErrors.FromError(err)
		}
		*c.dest = total
	}
	return stats, nil
}

// ExportCSV renders the overview as CSV.
func (s *DashboardService) ExportCSV(ctx context.Context) ([]byte, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.csv.Render(s.dataset(stats))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return data, nil
}

// ExportPDF renders the overview as PDF.
func (s *DashboardService) ExportPDF(ctx context.Context) ([]byte, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.Render(s.dataset(stats), "Platform Overview")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return data, nil
}

func (s *DashboardService) dataset(stats *models.DashboardStats) export.Dataset {
	rows := []map[string]string{
		{"metric": "News articles", "value": fmt.Sprintf("%d", stats.News.Total)},
		{"metric": "Total article views", "value": fmt.Sprintf("%d", stats.News.TotalViews)},
		{"metric": "Featured articles", "value": fmt.Sprintf("%d", stats.News.Featured)},
		{"metric": "Trending articles", "value": fmt.Sprintf("%d", stats.News.Trending)},
		{"metric": "Blog posts", "value": fmt.Sprintf("%d", stats.Blogs)},
		{"metric": "Pages", "value": fmt.Sprintf("%d", stats.Pages)},
		{"metric": "Media records", "value": fmt.Sprintf("%d", stats.Media)},
		{"metric": "Categories", "value": fmt.Sprintf("%d", stats.Categories)},
		{"metric": "Readers", "value": fmt.Sprintf("%d", stats.Readers)},
		{"metric": "Enquiries", "value": fmt.Sprintf("%d", stats.Enquiries.Total)},
		{"metric": "Unread enquiries", "value": fmt.Sprintf("%d", stats.Enquiries.New)},
	}
	return export.Dataset{Headers: []string{"metric", "value"}, Rows: rows}
}
