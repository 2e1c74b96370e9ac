package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	"github.com/newsphere/newsphere-api/pkg/response"
)

type memNewsStore struct {
	articles map[string]*models.NewsArticle
}

func (s *memNewsStore) Insert(_ context.Context, a *models.NewsArticle) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	copied := *a
	s.articles[a.ID] = &copied
	return nil
}

func (s *memNewsStore) FindByID(_ context.Context, id string) (*models.NewsArticle, error) {
	a, ok := s.articles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *a
	return &copied, nil
}

func (s *memNewsStore) FindBySlug(_ context.Context, slug string) (*models.NewsArticle, error) {
	for _, a := range s.articles {
		if a.Slug == slug {
			copied := *a
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *memNewsStore) List(_ context.Context, _ models.NewsFilter) ([]models.NewsArticle, int64, error) {
	out := make([]models.NewsArticle, 0, len(s.articles))
	for _, a := range s.articles {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (s *memNewsStore) Update(_ context.Context, a *models.NewsArticle) error {
	if _, ok := s.articles[a.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *a
	s.articles[a.ID] = &copied
	return nil
}

func (s *memNewsStore) SetFlag(_ context.Context, id, field string, value bool) error {
	a, ok := s.articles[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if field == "isFeatured" {
		a.IsFeatured = value
	} else {
		a.IsTrending = value
	}
	return nil
}

func (s *memNewsStore) IncrementViews(_ context.Context, id string) (int64, error) {
	a, ok := s.articles[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	a.Views++
	return a.Views, nil
}

func (s *memNewsStore) Delete(_ context.Context, id string) error {
	delete(s.articles, id)
	return nil
}

func (s *memNewsStore) Stats(_ context.Context) (*models.NewsStats, error) {
	return &models.NewsStats{Total: int64(len(s.articles))}, nil
}

type memAdminStore struct {
	admins map[string]*models.Admin
}

func (s *memAdminStore) Insert(_ context.Context, a *models.Admin) error {
	s.admins[a.ID] = a
	return nil
}

func (s *memAdminStore) FindByID(_ context.Context, id string) (*models.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return a, nil
}

func (s *memAdminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range s.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *memAdminStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.admins)), nil
}

func (s *memAdminStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if a, ok := s.admins[id]; ok {
		a.LastLogin = &at
	}
	return nil
}

func testServices(t *testing.T) (*Services, string, *memNewsStore) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("swordfish88"), bcrypt.MinCost)
	require.NoError(t, err)

	admins := &memAdminStore{admins: map[string]*models.Admin{
		"a1": {ID: "a1", Email: "ops@example.com", PasswordHash: string(hash), Role: models.RoleAdmin, IsActive: true},
	}}
	auth := service.NewAuthService(admins, zap.NewNop(), service.AuthConfig{Secret: "fn-secret"})

	login, err := auth.Login(context.Background(), models.LoginRequest{Email: "ops@example.com", Password: "swordfish88"})
	require.NoError(t, err)

	news := &memNewsStore{articles: map[string]*models.NewsArticle{}}
	svcs := &Services{
		News:   service.NewNewsService(news, zap.NewNop()),
		Auth:   auth,
		Logger: zap.NewNop(),
	}
	return svcs, login.Token, news
}

func call(t *testing.T, h http.HandlerFunc, method, target, token string, body interface{}) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h(w, req)

	var env response.Envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestNewsEntryPointCreateRequiresToken(t *testing.T) {
	svcs, token, _ := testServices(t)
	h := svcs.NewsFeed("/api/news").HandlerFunc()

	payload := models.CreateNewsRequest{
		Title:      "Grid storage hits record capacity",
		Summary:    "Utility-scale batteries crossed a new capacity threshold this quarter.",
		Category:   "Business",
		CoverImage: "https://cdn.example.com/grid.jpg",
	}

	w, env := call(t, h, http.MethodPost, "/api/news", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	w, env = call(t, h, http.MethodPost, "/api/news", token, payload)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
}

func TestNewsEntryPointPublicReadAndView(t *testing.T) {
	svcs, _, store := testServices(t)
	store.articles["n1"] = &models.NewsArticle{ID: "n1", Title: "Seed", Slug: "seed", Views: 2}
	h := svcs.NewsFeed("/api/news").HandlerFunc()

	w, env := call(t, h, http.MethodGet, "/api/news/n1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = call(t, h, http.MethodGet, "/api/news?slug=seed", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = call(t, h, http.MethodPost, "/api/news/n1?action=view", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), store.articles["n1"].Views)
}

func TestNewsEntryPointToggleRoundTrip(t *testing.T) {
	svcs, token, store := testServices(t)
	store.articles["n1"] = &models.NewsArticle{ID: "n1", Title: "Seed"}
	h := svcs.NewsFeed("/api/news").HandlerFunc()

	_, env := call(t, h, http.MethodPatch, "/api/news/n1/featured", token, nil)
	require.True(t, env.Success)
	assert.Equal(t, service.MsgMarkedFeatured, env.Message)

	_, env = call(t, h, http.MethodPatch, "/api/news/n1/featured", token, nil)
	require.True(t, env.Success)
	assert.Equal(t, service.MsgRemovedFeatured, env.Message)
	assert.False(t, store.articles["n1"].IsFeatured)
}

func TestAuthEntryPointLoginAndMe(t *testing.T) {
	svcs, _, _ := testServices(t)
	h := svcs.Authentication("/api/auth").HandlerFunc()

	w, env := call(t, h, http.MethodPost, "/api/auth?action=login", "",
		models.LoginRequest{Email: "ops@example.com", Password: "swordfish88"})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &login))
	require.NotEmpty(t, login.Token)

	w, env = call(t, h, http.MethodGet, "/api/auth?action=me", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}
