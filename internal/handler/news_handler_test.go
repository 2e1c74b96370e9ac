package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	"github.com/newsphere/newsphere-api/pkg/response"
)

type fakeNewsStore struct {
	articles map[string]*models.NewsArticle
}

func newFakeNewsStore() *fakeNewsStore {
	return &fakeNewsStore{articles: map[string]*models.NewsArticle{}}
}

func (s *fakeNewsStore) Insert(_ context.Context, article *models.NewsArticle) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	copied := *article
	s.articles[article.ID] = &copied
	return nil
}

func (s *fakeNewsStore) FindByID(_ context.Context, id string) (*models.NewsArticle, error) {
	article, ok := s.articles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *article
	return &copied, nil
}

func (s *fakeNewsStore) FindBySlug(_ context.Context, slug string) (*models.NewsArticle, error) {
	for _, article := range s.articles {
		if article.Slug == slug {
			copied := *article
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeNewsStore) List(_ context.Context, _ models.NewsFilter) ([]models.NewsArticle, int64, error) {
	out := make([]models.NewsArticle, 0, len(s.articles))
	for _, article := range s.articles {
		out = append(out, *article)
	}
	return out, int64(len(out)), nil
}

func (s *fakeNewsStore) Update(_ context.Context, article *models.NewsArticle) error {
	if _, ok := s.articles[article.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *article
	s.articles[article.ID] = &copied
	return nil
}

func (s *fakeNewsStore) SetFlag(_ context.Context, id, field string, value bool) error {
	article, ok := s.articles[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	switch field {
	case "isFeatured":
		article.IsFeatured = value
	case "isTrending":
		article.IsTrending = value
	}
	return nil
}

func (s *fakeNewsStore) IncrementViews(_ context.Context, id string) (int64, error) {
	article, ok := s.articles[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	article.Views++
	return article.Views, nil
}

func (s *fakeNewsStore) Delete(_ context.Context, id string) error {
	if _, ok := s.articles[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.articles, id)
	return nil
}

func (s *fakeNewsStore) Stats(_ context.Context) (*models.NewsStats, error) {
	return &models.NewsStats{Total: int64(len(s.articles))}, nil
}

func newsTestRouter(store *fakeNewsStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNewsHandler(service.NewNewsService(store, zap.NewNop()))

	r := gin.New()
	r.GET("/news", h.List)
	r.GET("/news/:id", h.Get)
	r.POST("/news", h.Create)
	r.POST("/news/:id/view", h.View)
	r.PATCH("/news/:id/featured", h.ToggleFeatured)
	r.PATCH("/news/:id/trending", h.ToggleTrending)
	r.DELETE("/news/:id", h.Delete)
	return r
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	return env
}

func TestNewsCreateThenToggleFeaturedRoundTrip(t *testing.T) {
	store := newFakeNewsStore()
	r := newsTestRouter(store)

	resp := performJSON(t, r, http.MethodPost, "/news", models.CreateNewsRequest{
		Title:      "Quantum chips reach new milestone",
		Summary:    "Researchers demonstrate error-corrected qubits at practical scale for the first time.",
		Category:   "Technology",
		CoverImage: "https://cdn.example.com/qubit.jpg",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	env := decodeEnvelope(t, resp)
	require.True(t, env.Success)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var article models.NewsArticle
	require.NoError(t, json.Unmarshal(raw, &article))
	require.NotEmpty(t, article.ID)
	require.False(t, article.IsFeatured)
	require.False(t, article.IsTrending)
	require.Zero(t, article.Views)

	first := decodeEnvelope(t, performJSON(t, r, http.MethodPatch, "/news/"+article.ID+"/featured", nil))
	require.True(t, first.Success)
	require.Equal(t, service.MsgMarkedFeatured, first.Message)

	second := decodeEnvelope(t, performJSON(t, r, http.MethodPatch, "/news/"+article.ID+"/featured", nil))
	require.True(t, second.Success)
	require.Equal(t, service.MsgRemovedFeatured, second.Message)
	require.False(t, store.articles[article.ID].IsFeatured)
}

func TestNewsCreateRejectsInvalidPayloadWithAllErrors(t *testing.T) {
	r := newsTestRouter(newFakeNewsStore())

	resp := performJSON(t, r, http.MethodPost, "/news", models.CreateNewsRequest{})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	env := decodeEnvelope(t, resp)
	require.False(t, env.Success)
	require.Nil(t, env.Data)
	require.Len(t, env.Errors, 4)
}

func TestNewsGetUnknownReturnsNotFoundEnvelope(t *testing.T) {
	r := newsTestRouter(newFakeNewsStore())

	resp := performJSON(t, r, http.MethodGet, "/news/missing", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	env := decodeEnvelope(t, resp)
	require.False(t, env.Success)
	require.Equal(t, "news article not found", env.Error)
}

func TestNewsViewEndpointReturnsIncrementedCount(t *testing.T) {
	store := newFakeNewsStore()
	store.articles["n1"] = &models.NewsArticle{ID: "n1", Title: "Seed", Views: 7}
	r := newsTestRouter(store)

	resp := performJSON(t, r, http.MethodPost, "/news/n1/view", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"views":8`)
}

func TestNewsListCarriesPagination(t *testing.T) {
	store := newFakeNewsStore()
	store.articles["n1"] = &models.NewsArticle{ID: "n1", Title: "One"}
	store.articles["n2"] = &models.NewsArticle{ID: "n2", Title: "Two"}
	r := newsTestRouter(store)

	env := decodeEnvelope(t, performJSON(t, r, http.MethodGet, "/news?page=1&limit=20", nil))
	require.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	require.Equal(t, int64(2), env.Pagination.Total)
	require.Equal(t, int64(1), env.Pagination.Pages)
}
