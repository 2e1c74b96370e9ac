package gnews

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/pkg/config"
)

func testClient(baseURL string) *Client {
	return New(config.GNewsConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Country:        "us",
		Lang:           "en",
		Timeout:        2 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, nil)
}

func sampleResponse(titles ...string) apiResponse {
	resp := apiResponse{TotalArticles: len(titles)}
	for _, title := range titles {
		resp.Articles = append(resp.Articles, apiArticle{
			Title:       title,
			Description: "description of " + title,
			PublishedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			Source:      apiSource{Name: "Example Wire"},
		})
	}
	return resp
}

func TestTopHeadlinesTransform(t *testing.T) {
	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query().Encode())
		_ = json.NewEncoder(w).Encode(sampleResponse(
			"First", "Second", "Third", "Fourth", "Fifth",
			"Sixth", "Seventh", "Eighth", "Ninth",
		))
	}))
	defer server.Close()

	client := testClient(server.URL)
	articles, err := client.TopHeadlines(context.Background(), HeadlinesQuery{Category: "technology", Max: 9})
	require.NoError(t, err)
	require.Len(t, articles, 9)

	query := gotQuery.Load().(string)
	assert.Contains(t, query, "category=technology")
	assert.Contains(t, query, "apikey=test-key")
	assert.Contains(t, query, "lang=en")

	for i, a := range articles {
		assert.Equal(t, models.CategoryTechnology, a.Category)
		assert.Equal(t, i < 3, a.IsFeatured, "rank %d", i)
		assert.Equal(t, i < 8, a.IsTrending, "rank %d", i)
		assert.Equal(t, placeholderImage, a.CoverImage)
		assert.GreaterOrEqual(t, a.Views, int64(500))
		assert.Contains(t, a.ID, "gnews-")
	}
}

func TestSyntheticIDIsStablePerTitle(t *testing.T) {
	assert.Equal(t, syntheticID("Same Title"), syntheticID("Same Title"))
	assert.NotEqual(t, syntheticID("Title A"), syntheticID("Title B"))
}

func TestCategoryRemapFallsBackToWorld(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sampleResponse("Only"))
	}))
	defer server.Close()

	client := testClient(server.URL)
	articles, err := client.TopHeadlines(context.Background(), HeadlinesQuery{Category: "entertainment"})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, models.CategoryWorld, articles[0].Category)
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(sampleResponse("Recovered"))
	}))
	defer server.Close()

	client := testClient(server.URL)
	articles, err := client.Search(context.Background(), SearchQuery{Q: "go"})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Search(context.Background(), SearchQuery{Q: "go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestEnabled(t *testing.T) {
	assert.True(t, testClient("http://x").Enabled())
	disabled := New(config.GNewsConfig{}, nil)
	assert.False(t, disabled.Enabled())
}
