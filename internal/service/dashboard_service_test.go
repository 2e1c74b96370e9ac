package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
)

type stubNewsStats struct {
	stats models.NewsStats
	calls int
}

func (s *stubNewsStats) Stats(ctx context.Context) (*models.NewsStats, error) {
	s.calls++
	st := s.stats
	return &st, nil
}

type stubEnquiryStats struct{ stats models.EnquiryStats }

func (s *stubEnquiryStats) Stats(ctx context.Context) (*models.EnquiryStats, error) {
	st := s.stats
	return &st, nil
}

type stubCounter struct{ total int64 }

func (s *stubCounter) Count(ctx context.Context) (int64, error) {
	return s.total, nil
}

func testDashboard() (*DashboardService, *stubNewsStats) {
	news := &stubNewsStats{stats: models.NewsStats{Total: 12, TotalViews: 3400, Featured: 3}}
	enquiries := &stubEnquiryStats{stats: models.EnquiryStats{Total: 9, New: 2}}
	counters := DashboardCounters{
		Blogs:      &stubCounter{total: 4},
		Pages:      &stubCounter{total: 6},
		Media:      &stubCounter{total: 40},
		Categories: &stubCounter{total: 5},
		Readers:    &stubCounter{total: 77},
	}
	return NewDashboardService(news, enquiries, counters, nil, time.Minute, zap.NewNop()), news
}

func TestDashboardServiceStats(t *testing.T) {
	svc, _ := testDashboard()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.News.Total)
	assert.Equal(t, int64(2), stats.Enquiries.New)
	assert.Equal(t, int64(4), stats.Blogs)
	assert.Equal(t, int64(77), stats.Readers)
}

func TestDashboardServiceExportCSV(t *testing.T) {
	svc, _ := testDashboard()

	data, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	body := string(data)
	assert.True(t, strings.HasPrefix(body, "metric,value"))
	assert.Contains(t, body, "News articles,12")
	assert.Contains(t, body, "Readers,77")
}

func TestDashboardServiceExportPDF(t *testing.T) {
	svc, _ := testDashboard()

	data, err := svc.ExportPDF(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
