// Package gnews proxies the third-party news aggregation API and
// transforms its articles into the platform shape.
package gnews

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/pkg/config"
)

const placeholderImage = "https://placehold.co/800x450?text=News"

// categoryMap remaps upstream category names onto the platform enum.
var categoryMap = map[string]models.NewsCategory{
	"technology": models.CategoryTechnology,
	"business":   models.CategoryBusiness,
	"science":    models.CategoryScience,
	"health":     models.CategoryHealth,
	"world":      models.CategoryWorld,
	"nation":     models.CategoryWorld,
	"general":    models.CategoryWorld,
}

// HeadlinesQuery parameterizes a top-headlines request.
type HeadlinesQuery struct {
	Category string
	Country  string
	Max      int
	From     string
	To       string
}

// SearchQuery parameterizes a full-text search request.
type SearchQuery struct {
	Q       string
	Country string
	Max     int
	From    string
	To      string
}

// Client talks to the upstream aggregator with bounded retries.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	country        string
	lang           string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *zap.Logger
}

// New creates a Client. An empty API key yields a disabled client; callers
// check Enabled before use.
func New(cfg config.GNewsConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		country:        cfg.Country,
		lang:           cfg.Lang,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With(zap.String("upstream", "gnews")),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// TopHeadlines fetches and transforms the top-headlines feed.
func (c *Client) TopHeadlines(ctx context.Context, q HeadlinesQuery) ([]models.NewsArticle, error) {
	params := c.baseParams(q.Country, q.Max, q.From, q.To)
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	resp, err := c.fetch(ctx, c.baseURL+"/top-headlines?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return c.transform(resp.Articles, q.Category), nil
}

// Search fetches and transforms a search results page.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]models.NewsArticle, error) {
	params := c.baseParams(q.Country, q.Max, q.From, q.To)
	params.Set("q", q.Q)
	resp, err := c.fetch(ctx, c.baseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return c.transform(resp.Articles, ""), nil
}

func (c *Client) baseParams(country string, max int, from, to string) url.Values {
	if country == "" {
		country = c.country
	}
	if max <= 0 || max > 50 {
		max = 10
	}
	params := url.Values{}
	params.Set("lang", c.lang)
	params.Set("country", country)
	params.Set("max", strconv.Itoa(max))
	params.Set("apikey", c.apiKey)
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}
	return params
}

func (c *Client) fetch(ctx context.Context, rawURL string) (*apiResponse, error) {
	var resp *apiResponse
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err = c.doRequest(ctx, rawURL)
		if err == nil {
			return resp, nil
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, rawURL string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &apiResp, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

// transform maps upstream articles onto the platform shape: synthetic IDs
// hashed from the title, a placeholder when the image is absent, the
// category remapped through the fixed table, featured/trending assigned by
// rank within the fetched page, and display-only randomized view counts.
func (c *Client) transform(items []apiArticle, requestedCategory string) []models.NewsArticle {
	category := models.CategoryWorld
	if mapped, ok := categoryMap[requestedCategory]; ok {
		category = mapped
	}

	articles := make([]models.NewsArticle, 0, len(items))
	for rank, item := range items {
		image := item.Image
		if image == "" {
			image = placeholderImage
		}

		articles = append(articles, models.NewsArticle{
			ID:          syntheticID(item.Title),
			Title:       item.Title,
			Summary:     item.Description,
			Content:     item.Content,
			Category:    category,
			Source:      item.Source.Name,
			CoverImage:  image,
			PublishedAt: item.PublishedAt,
			IsFeatured:  rank < 3,
			IsTrending:  rank < 8,
			Views:       rand.Int63n(4500) + 500,
		})
	}
	return articles
}

func syntheticID(title string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(title))
	return fmt.Sprintf("gnews-%x", h.Sum64())
}
